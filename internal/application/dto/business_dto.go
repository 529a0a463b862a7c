package dto

// BusinessView un negocio en respuestas.
type BusinessView struct {
	ID          string  `json:"id"`
	Name        string  `json:"nombre"`
	ReceiverRUT *string `json:"rut_receptor"`
	LegalName   string  `json:"razon_social,omitempty"`
	Email       string  `json:"correo,omitempty"`
	Address     string  `json:"direccion,omitempty"`
}

// CreateBusinessRequest alta manual de un negocio.
type CreateBusinessRequest struct {
	Name        string `json:"nombre"`
	ReceiverRUT string `json:"rut_receptor"`
	LegalName   string `json:"razon_social"`
	Email       string `json:"correo"`
	Address     string `json:"direccion"`
}

// BusinessAssignRequest asignación de negocio a una factura.
type BusinessAssignRequest struct {
	BusinessID string `json:"negocio_id"`
}
