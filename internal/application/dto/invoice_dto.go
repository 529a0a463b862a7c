package dto

import "github.com/shopspring/decimal"

// InvoiceView cabecera de factura en respuestas.
type InvoiceView struct {
	ID           string          `json:"id"`
	Folio        string          `json:"folio"`
	SupplierID   string          `json:"proveedor_id"`
	IssueDate    string          `json:"fecha_emision"`
	PaymentTerms string          `json:"forma_pago"`
	Total        decimal.Decimal `json:"monto_total"`
	IsCreditNote bool            `json:"es_nota_credito"`
	BusinessID   *string         `json:"negocio_id"`
}

// SupplierView proveedor en respuestas.
type SupplierView struct {
	ID      string `json:"id"`
	RUT     string `json:"rut"`
	Name    string `json:"nombre"`
	Email   string `json:"correo_contacto,omitempty"`
	Address string `json:"direccion,omitempty"`
}
