package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es una fila por línea de factura (no se deduplica al crear: cada
// aparición conserva su propio snapshot histórico). La vinculación entre
// apariciones del mismo producto real la hace el código de lectura (cod_lec);
// el cod_admin agrupa para porcentaje adicional y factor UM.
type Product struct {
	ID            string
	Name          string
	Code          *string // código del proveedor; "N/A" y vacío normalizan a nil
	Unit          string
	Quantity      decimal.Decimal
	SupplierID    string
	CategoryID    *string
	AdminCodeID   *string // clasificación administrativa (cod_admin_id)
	ReadingCodeID *string // huella de identidad (cod_lec_id)
	CreatedAt     time.Time
}
