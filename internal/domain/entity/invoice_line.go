package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine es el registro monetario de un producto dentro de una factura
// (tabla detalle_factura). Invariantes mantenidas por el motor de recálculo:
//
//	Net        = PrecioUnitario × Cantidad × signo
//	Additional = Net × porcentaje_adicional
//	TotalCost  = Net + Additional + Misc
//	UnitCost   = TotalCost / (Cantidad × factor UM), 0 si el denominador es 0
//
// Misc (otros) lo ingresa el operador y nunca se deriva ni cambia de signo.
type InvoiceLine struct {
	ID         string
	InvoiceID  string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Net        decimal.Decimal // neto con signo (negativo en notas de crédito)
	VAT        decimal.Decimal
	OtherTaxes decimal.Decimal // legado, normalmente cero
	Additional decimal.Decimal // imp_adicional
	Misc       int64           // otros: ajuste manual entero
	TotalCost  decimal.Decimal
	UnitCost   decimal.Decimal
	CreatedAt  time.Time // desempata líneas de la misma fecha de emisión
}
