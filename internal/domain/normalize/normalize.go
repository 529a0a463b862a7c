// Package normalize contiene las primitivas de normalización compartidas por
// la resolución de identidad de productos (códigos de lectura) y la
// resolución de proveedores y negocios por RUT.
package normalize

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Centinelas usados cuando el nombre o el código vienen vacíos.
const (
	EmptyNameKey = "SINNOMBRE"
	EmptyCode    = "SINCOD"
)

const nameKeyMaxLen = 32

// stripAccents descompone (NFD), elimina marcas diacríticas y recompone (NFC).
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// RUT normaliza un RUT chileno: sin puntos ni espacios, mayúsculas, formato
// CUERPO-DV. El dígito verificador puede ser un dígito o K. Si no trae guión,
// el último carácter se toma como DV.
func RUT(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		if r >= '0' && r <= '9' || r == 'K' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return ""
	}
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		body := strings.ReplaceAll(s[:i], "-", "")
		dv := strings.ReplaceAll(s[i+1:], "-", "")
		if body == "" || dv == "" {
			return strings.ReplaceAll(s, "-", "")
		}
		return body + "-" + dv
	}
	if len(s) < 2 {
		return s
	}
	return s[:len(s)-1] + "-" + s[len(s)-1:]
}

// tokens separa en fragmentos alfanuméricos, sin acentos y en mayúsculas.
func tokens(s string) []string {
	s = strings.ToUpper(stripAccents(s))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
}

// NameKey deriva la clave de nombre: primeras tres palabras alfabéticas unidas
// por "_", truncada a 32 caracteres. Nombre vacío → SINNOMBRE.
func NameKey(name string) string {
	var words []string
	for _, t := range tokens(name) {
		if !isAlpha(t) {
			continue
		}
		words = append(words, t)
		if len(words) == 3 {
			break
		}
	}
	if len(words) == 0 {
		return EmptyNameKey
	}
	key := strings.Join(words, "_")
	if len(key) > nameKeyMaxLen {
		key = key[:nameKeyMaxLen]
	}
	return key
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return s != ""
}

// FullName devuelve el nombre completo normalizado (tokens en mayúsculas sin
// acentos, unidos por un espacio). Es la entrada del hash de desambiguación.
func FullName(name string) string {
	return strings.Join(tokens(name), " ")
}

// Code normaliza un código de proveedor a [A-Z0-9]. Vacío, "N/A" o "NULL"
// equivalen a ausencia de código y devuelven "".
func Code(raw string) string {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "" || upper == "N/A" || upper == "NA" || upper == "NULL" {
		return ""
	}
	var b strings.Builder
	for _, r := range stripAccents(upper) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fingerprint deriva el valor del código de lectura para la tripleta
// (RUT proveedor, nombre, código). Con código presente:
//
//	{rut}_{clave_nombre}_{codigo}
//
// Sin código utilizable, los primeros 8 hex del SHA-1 del nombre completo
// normalizado desambiguan productos distintos que comparten las tres primeras
// palabras:
//
//	{rut}_{clave_nombre}_NC_{8hex}
func Fingerprint(supplierRUT, name, code string) string {
	rut := RUT(supplierRUT)
	key := NameKey(name)
	if c := Code(code); c != "" {
		return rut + "_" + key + "_" + c
	}
	sum := sha1.Sum([]byte(FullName(name)))
	return rut + "_" + key + "_NC_" + hex.EncodeToString(sum[:])[:8]
}
