package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factorg/factorg-api/internal/domain/costing"
)

func d(s string) decimal.Decimal {
	out, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeLine
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeLine_FacturaNormal(t *testing.T) {
	out := costing.ComputeLine(costing.LineInput{
		Quantity:   d("10"),
		UnitPrice:  d("1500"),
		Percentage: d("0.10"),
		UMFactor:   d("1"),
		Misc:       500,
	})

	assert.True(t, out.Net.Equal(d("15000")), "net = precio × cantidad")
	assert.True(t, out.Additional.Equal(d("1500")), "adicional = net × porcentaje")
	assert.True(t, out.TotalCost.Equal(d("17000")), "total = net + adicional + otros")
	assert.True(t, out.UnitCost.Equal(d("1700")), "unitario = total / cantidad")
}

// En nota de crédito el neto y el adicional invierten signo, pero "otros"
// conserva el suyo: es un ajuste del operador, no un monto del documento.
func TestComputeLine_NotaCredito_InvierteSignoMenosOtros(t *testing.T) {
	out := costing.ComputeLine(costing.LineInput{
		Quantity:     d("10"),
		UnitPrice:    d("1500"),
		Percentage:   d("0.10"),
		UMFactor:     d("1"),
		Misc:         500,
		IsCreditNote: true,
	})

	assert.True(t, out.Net.Equal(d("-15000")))
	assert.True(t, out.Additional.Equal(d("-1500")))
	assert.True(t, out.TotalCost.Equal(d("-16000")), "-15000 - 1500 + 500")
}

func TestComputeLine_FactorUM(t *testing.T) {
	// 10 sacos de 25 kg: el costo unitario es por kilo
	out := costing.ComputeLine(costing.LineInput{
		Quantity:  d("10"),
		UnitPrice: d("25000"),
		UMFactor:  d("25"),
	})
	assert.True(t, out.TotalCost.Equal(d("250000")))
	assert.True(t, out.UnitCost.Equal(d("1000")), "total / (cantidad × factor)")
}

func TestComputeLine_CantidadCero_CostoUnitarioCero(t *testing.T) {
	out := costing.ComputeLine(costing.LineInput{
		Quantity:  decimal.Zero,
		UnitPrice: d("1500"),
		Misc:      100,
	})
	assert.True(t, out.Net.IsZero())
	assert.True(t, out.UnitCost.IsZero(), "denominador cero nunca divide")
	assert.True(t, out.TotalCost.Equal(d("100")), "otros sobrevive aunque no haya cantidad")
}

func TestComputeLine_FactorUMCero_TratadoComoUno(t *testing.T) {
	out := costing.ComputeLine(costing.LineInput{
		Quantity:  d("4"),
		UnitPrice: d("100"),
		UMFactor:  decimal.Zero,
	})
	assert.True(t, out.UnitCost.Equal(d("100")))
}

// ──────────────────────────────────────────────────────────────────────────────
// NormalizePercentage / ClampFraction
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizePercentage_Formas(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0.15", "0.15"},     // fracción tal cual
		{"15", "0.15"},       // entero 0–100
		{"15%", "0.15"},      // con símbolo
		{"10,5", "0.105"},    // coma decimal
		{`"15%"`, "0.15"},    // crudo desde JSON con comillas
		{"150", "1"},         // >100 se recorta a 1 tras dividir
		{"-5", "0"},          // negativo se recorta a 0
		{"1", "1"},           // 1 es fracción válida, no se divide
		{"0", "0"},
	}
	for _, c := range cases {
		got, err := costing.NormalizePercentage(c.in)
		require.NoError(t, err, "NormalizePercentage(%q)", c.in)
		assert.True(t, got.Equal(d(c.want)), "NormalizePercentage(%q) = %s, quiero %s", c.in, got, c.want)
	}
}

func TestNormalizePercentage_Invalido(t *testing.T) {
	_, err := costing.NormalizePercentage("diez por ciento")
	assert.Error(t, err)
	_, err = costing.NormalizePercentage("")
	assert.Error(t, err)
}

func TestClampFraction_SoloDivideUnaVez(t *testing.T) {
	// 0.5 ya es fracción: queda igual
	assert.True(t, costing.ClampFraction(d("0.5")).Equal(d("0.5")))
	// 50 se interpreta como 50% → 0.5, no 0.005
	assert.True(t, costing.ClampFraction(d("50")).Equal(d("0.5")))
}
