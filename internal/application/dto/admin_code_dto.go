package dto

import "encoding/json"

// CreateAdminCodeRequest alta en el maestro de códigos admin. El porcentaje
// acepta las mismas formas que PercentageUpdateRequest.
type CreateAdminCodeRequest struct {
	Code        string          `json:"cod_admin"`
	ProductName string          `json:"nombre_producto"`
	Family      string          `json:"familia"`
	Area        string          `json:"area"`
	UMFactor    json.RawMessage `json:"um"`
	UnitLabel   string          `json:"un_medida"`
	Percentage  json.RawMessage `json:"porcentaje_adicional"`
}

// UpdateAdminCodeRequest edición parcial del maestro. Cambiar el porcentaje o
// el factor UM cascadea recálculo a todos los productos vinculados.
type UpdateAdminCodeRequest struct {
	ProductName *string         `json:"nombre_producto"`
	Family      *string         `json:"familia"`
	Area        *string         `json:"area"`
	UMFactor    json.RawMessage `json:"um"`
	UnitLabel   *string         `json:"un_medida"`
	Percentage  json.RawMessage `json:"porcentaje_adicional"`
}

// AdminCodeUpdateResponse maestro actualizado + fan-out de la cascada.
type AdminCodeUpdateResponse struct {
	AdminCode   AdminCodeView `json:"cod_admin"`
	AffectedIDs []string      `json:"productos_afectados"`
}
