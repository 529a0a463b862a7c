package entity

import "time"

// Supplier representa un proveedor (emisor de la factura).
// RUT se guarda normalizado (mayúsculas, sin puntos, formato NNNNNNN-DV);
// la búsqueda durante la ingesta es insensible a puntuación y mayúsculas.
type Supplier struct {
	ID        string
	RUT       string
	Name      string
	PayTerms  string
	Address   string
	Email     string
	CreatedAt time.Time
}
