package entity

// Business es un negocio (nombre_negocio) resuelto desde el RUT del receptor
// de la factura. Se usa para particionar la visibilidad de los reportes por
// unidad de negocio; no participa en el cálculo de costos.
type Business struct {
	ID          string
	Name        string
	ReceiverRUT *string // RUT normalizado del receptor; único cuando existe
	LegalName   string
	Email       string
	Address     string
}
