// Package costing implementa el motor de recálculo de costos como servicio de
// dominio puro: dados los insumos vigentes (precio, cantidad, porcentaje
// adicional, ajuste manual, signo de nota de crédito y factor UM) produce los
// cuatro campos derivados de una línea de factura.
package costing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineInput insumos de una línea para el recálculo.
type LineInput struct {
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Percentage   decimal.Decimal // fracción 0..1 del cod_admin; cero si no hay clasificación
	UMFactor     decimal.Decimal // factor UM del cod_admin; 1 si no hay o no es válido
	Misc         int64           // ajuste manual (otros); conserva su signo siempre
	IsCreditNote bool
}

// LineResult campos derivados de una línea.
type LineResult struct {
	Net        decimal.Decimal
	Additional decimal.Decimal
	TotalCost  decimal.Decimal
	UnitCost   decimal.Decimal
}

// ComputeLine aplica las invariantes de costo:
//
//	net        = precio_unitario × cantidad × signo
//	adicional  = net × porcentaje
//	total      = net + adicional + otros
//	unitario   = total / (cantidad × factorUM), 0 si el denominador es 0
//
// El neto SIEMPRE se recalcula desde precio × cantidad; los subtotales que
// declara el propio XML no se usan (fuente histórica de inconsistencias entre
// emisores).
func ComputeLine(in LineInput) LineResult {
	net := in.UnitPrice.Mul(in.Quantity)
	if in.IsCreditNote {
		net = net.Neg()
	}
	additional := net.Mul(in.Percentage)
	total := net.Add(additional).Add(decimal.NewFromInt(in.Misc))

	um := in.UMFactor
	if um.IsZero() {
		um = decimal.NewFromInt(1)
	}
	denom := in.Quantity.Mul(um)
	unitCost := decimal.Zero
	if !denom.IsZero() {
		unitCost = total.Div(denom)
	}
	return LineResult{Net: net, Additional: additional, TotalCost: total, UnitCost: unitCost}
}

// NormalizePercentage acepta un porcentaje como fracción (0.10), entero (10) o
// texto ("10%", "10,5") y lo lleva a fracción en [0,1]: los valores > 1 se
// dividen por 100 una sola vez y el resultado se recorta a [0,1]. Tolera
// comillas alrededor (el valor llega crudo desde JSON).
func NormalizePercentage(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return ClampFraction(d), nil
}

// ClampFraction divide por 100 los valores > 1 (expresados como 0–100) y
// recorta el resultado a [0,1].
func ClampFraction(d decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(decimal.NewFromInt(1)) {
		d = d.Div(hundred)
	}
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if d.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return d
}
