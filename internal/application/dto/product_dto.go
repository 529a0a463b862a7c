package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AdminCodeView subobjeto denormalizado del cod_admin en respuestas.
type AdminCodeView struct {
	ID          string          `json:"id"`
	CodAdmin    string          `json:"cod_admin"`
	ProductName string          `json:"nombre_producto,omitempty"`
	Family      string          `json:"familia,omitempty"`
	Area        string          `json:"area,omitempty"`
	UMFactor    decimal.Decimal `json:"um"`
	UnitLabel   string          `json:"un_medida,omitempty"`
	Percentage  decimal.Decimal `json:"porcentaje_adicional"`
}

// CategoryView subobjeto denormalizado de la categoría.
type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// ReadingCodeView subobjeto denormalizado del código de lectura.
type ReadingCodeView struct {
	ID          string `json:"id"`
	Value       string `json:"valor"`
	NameKey     string `json:"nombre_norm,omitempty"`
	OriginCode  string `json:"codigo_origen,omitempty"`
	SupplierRUT string `json:"rut_proveedor,omitempty"`
}

// ProductCostView un producto con los campos crudos y derivados de su línea
// más reciente, como lo consume el panel.
type ProductCostView struct {
	ID           string           `json:"id"`
	Name         string           `json:"nombre"`
	Code         *string          `json:"codigo"`
	Unit         string           `json:"unidad"`
	Quantity     decimal.Decimal  `json:"cantidad"`
	SupplierID   string           `json:"proveedor_id"`
	CategoryID   *string          `json:"categoria_id"`
	AdminCodeID  *string          `json:"cod_admin_id"`
	Folio        string           `json:"folio,omitempty"`
	IssueDate    string           `json:"fecha_emision,omitempty"`
	IsCreditNote bool             `json:"es_nota_credito"`
	UnitPrice    decimal.Decimal  `json:"precio_unitario"`
	VAT          decimal.Decimal  `json:"iva"`
	OtherTaxes   decimal.Decimal  `json:"otros_impuestos"`
	Net          decimal.Decimal  `json:"total_neto"`
	Percentage   decimal.Decimal  `json:"porcentaje_adicional"`
	Additional   decimal.Decimal  `json:"imp_adicional"`
	Misc         int64            `json:"otros"`
	TotalCost    decimal.Decimal  `json:"total_costo"`
	UnitCost     decimal.Decimal  `json:"costo_unitario"`
	AdminCode    *AdminCodeView   `json:"cod_admin,omitempty"`
	Category     *CategoryView    `json:"categoria,omitempty"`
	ReadingCode  *ReadingCodeView `json:"cod_lec,omitempty"`
}

// ProductListResponse listado paginado con total para el paginador del panel.
type ProductListResponse struct {
	Items []ProductCostView `json:"productos"`
	Total int               `json:"total"`
}

// ProductFilterRequest filtros del listado (query params).
type ProductFilterRequest struct {
	Name         string `query:"nombre"`
	Code         string `query:"codigo"`
	Folio        string `query:"folio"`
	AdminCodeID  string `query:"cod_admin_id"`
	CategoryID   string `query:"categoria_id"`
	BusinessID   string `query:"negocio_id"`
	BusinessName string `query:"negocio"`
	DateFrom     string `query:"fecha_inicio"`
	DateTo       string `query:"fecha_fin"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}

// PercentageUpdateRequest acepta el porcentaje como número o texto
// ("0.10", 10, "10%", "10,5"); se normaliza a fracción en [0,1].
type PercentageUpdateRequest struct {
	Percentage json.RawMessage `json:"porcentaje_adicional"`
}

// AdminCodeAssignRequest asignación de cod_admin a un producto o a un código
// de lectura.
type AdminCodeAssignRequest struct {
	AdminCodeID string `json:"cod_admin_id"`
}

// CategoryAssignRequest asignación de categoría a un producto.
type CategoryAssignRequest struct {
	CategoryID string `json:"categoria_id"`
}

// MiscUpdateRequest ajuste manual (otros) sobre la línea más reciente.
type MiscUpdateRequest struct {
	Misc int64 `json:"otros"`
}

// ProductPatchRequest parche explícito de campos editables del producto.
// Solo los campos no nil se aplican (lista blanca, sin reflexión).
type ProductPatchRequest struct {
	Name        *string `json:"nombre"`
	Code        *string `json:"codigo"`
	Unit        *string `json:"unidad"`
	CategoryID  *string `json:"categoria_id"`
	AdminCodeID *string `json:"cod_admin_id"`
}

// PropagationResponse resultado de una propagación: el producto editado y el
// conjunto de productos afectados por la cascada, para poder auditarla.
type PropagationResponse struct {
	Product     *ProductCostView `json:"producto,omitempty"`
	AffectedIDs []string         `json:"productos_afectados"`
}

// PricePointView un punto del historial de precios.
type PricePointView struct {
	Month        string          `json:"mes"`
	NetUnitPrice decimal.Decimal `json:"precio_unitario"`
	UnitCost     decimal.Decimal `json:"costo_unitario"`
}
