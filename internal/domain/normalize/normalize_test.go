package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/factorg/factorg-api/internal/domain/normalize"
)

// ──────────────────────────────────────────────────────────────────────────────
// RUT
// ──────────────────────────────────────────────────────────────────────────────

func TestRUT_Normalizacion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"76.543.210-5", "76543210-5"},
		{"76543210-5", "76543210-5"},
		{" 76543210-k ", "76543210-K"},
		{"765432105", "76543210-5"}, // sin guión: último carácter es el DV
		{"12.345.678-K", "12345678-K"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, normalize.RUT(c.in), "RUT(%q)", c.in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NameKey / FullName
// ──────────────────────────────────────────────────────────────────────────────

func TestNameKey_TresPrimerasPalabrasAlfabeticas(t *testing.T) {
	assert.Equal(t, "HARINA_ESPECIAL_PREMIUM", normalize.NameKey("Harina Especial Premium 25kg"))
	// los tokens numéricos o mixtos no cuentan como palabra
	assert.Equal(t, "ACEITE_VEGETAL", normalize.NameKey("Aceite 900cc Vegetal"))
	// los acentos se eliminan antes de tokenizar
	assert.Equal(t, "AZUCAR_GRANULADA", normalize.NameKey("Azúcar Granulada"))
}

func TestNameKey_NombreVacio(t *testing.T) {
	assert.Equal(t, "SINNOMBRE", normalize.NameKey(""))
	assert.Equal(t, "SINNOMBRE", normalize.NameKey("123 456"))
}

func TestNameKey_Truncado(t *testing.T) {
	key := normalize.NameKey("Supercalifragilistico Expialidocioso Extraordinario")
	assert.LessOrEqual(t, len(key), 32)
}

func TestFullName_TokensSinAcentos(t *testing.T) {
	assert.Equal(t, "HARINA ESPECIAL PREMIUM", normalize.FullName("Harina  Especial   Premium"))
	assert.Equal(t, "ACEITE 900CC", normalize.FullName("aceite 900cc"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Code
// ──────────────────────────────────────────────────────────────────────────────

func TestCode_Normalizacion(t *testing.T) {
	assert.Equal(t, "ABC123", normalize.Code(" abc-123 "))
	assert.Equal(t, "", normalize.Code("N/A"))
	assert.Equal(t, "", normalize.Code("null"))
	assert.Equal(t, "", normalize.Code(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Fingerprint
// ──────────────────────────────────────────────────────────────────────────────

func TestFingerprint_ConCodigo(t *testing.T) {
	got := normalize.Fingerprint("76.543.210-5", "Harina Especial Premium", "HAR-001")
	assert.Equal(t, "76543210-5_HARINA_ESPECIAL_PREMIUM_HAR001", got)
}

// Vector exacto: SHA-1("HARINA ESPECIAL PREMIUM") empieza con 02683534. Si
// alguien cambia la tokenización o el hash, este test falla de inmediato.
func TestFingerprint_SinCodigo_VectorExacto(t *testing.T) {
	got := normalize.Fingerprint("76.543.210-5", "Harina Especial Premium", "N/A")
	assert.Equal(t, "76543210-5_HARINA_ESPECIAL_PREMIUM_NC_02683534", got)
}

// Dos productos que comparten las tres primeras palabras pero difieren después
// deben producir huellas distintas (el hash del nombre completo desambigua).
func TestFingerprint_SinCodigo_NombresLargosDistintos(t *testing.T) {
	a := normalize.Fingerprint("76543210-5", "Harina Especial Premium 25kg", "")
	b := normalize.Fingerprint("76543210-5", "Harina Especial Premium 50kg", "")
	assert.NotEqual(t, a, b)
}

func TestFingerprint_EsDeterminista(t *testing.T) {
	a := normalize.Fingerprint("76543210-5", "Aceite Vegetal", "ACE9")
	b := normalize.Fingerprint("76.543.210-5", "aceite  vegetal", "ace-9")
	assert.Equal(t, a, b, "la huella debe ser estable ante variaciones de formato")
}
