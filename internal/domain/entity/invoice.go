package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura DTE ingestada.
// Unicidad: (SupplierID, Folio). Una nota de crédito (TipoDTE 61) invierte el
// signo de todos los montos derivados de sus líneas.
type Invoice struct {
	ID           string
	Folio        string
	SupplierID   string
	IssueDate    time.Time
	PaymentTerms string
	Total        decimal.Decimal // monto total declarado por el documento (con signo)
	IsCreditNote bool
	BusinessID   *string // negocio asignado (partición de visibilidad); nil hasta asignarse
	CreatedAt    time.Time
}
