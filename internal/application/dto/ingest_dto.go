package dto

// IngestResponse resultado de subir un XML: cuántas facturas se crearon y
// cuántas se saltaron por duplicadas (mismo proveedor + folio).
type IngestResponse struct {
	NewInvoices       int      `json:"facturas_nuevas"`
	DuplicateInvoices int      `json:"facturas_duplicadas"`
	InvoiceIDs        []string `json:"factura_ids,omitempty"`
}
