// Package dte convierte documentos tributarios electrónicos chilenos (XML DTE)
// en estructuras normalizadas listas para la ingesta. El parser es tolerante:
// los campos opcionales degradan a valores por defecto y solo el XML mal
// formado aborta el documento.
package dte

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/factorg/factorg-api/internal/domain"
)

// TipoDTE 61: nota de crédito. Invierte el signo de todos los montos derivados.
const docTypeCreditNote = "61"

// Valores por defecto cuando el XML omite el campo.
const (
	DefaultItemName = "Producto sin nombre"
	DefaultItemCode = "N/A"
	DefaultItemUnit = "UN"
	defaultPayTerms = "Contado"
)

// Party emisor o receptor del documento.
type Party struct {
	RUT       string
	LegalName string
	Contact   string
	Locality  string
	Address   string
}

// Item una línea de detalle del documento. Net ya viene recalculado como
// precio × cantidad × signo; los subtotales declarados por el XML se ignoran.
type Item struct {
	Name      string
	Code      string
	Unit      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Net       decimal.Decimal
}

// Document un DTE normalizado.
type Document struct {
	Folio        string
	IssueDate    time.Time
	PaymentTerms string
	Total        decimal.Decimal // monto total declarado, con signo
	IsCreditNote bool
	Issuer       Party
	Receiver     Party
	Items        []Item
}

// Parse procesa un payload XML que puede contener uno o varios elementos
// Documento (envíos masivos del SII). Devuelve domain.ErrInvalidXML solo si el
// XML no está bien formado; los campos faltantes degradan a defaults.
func Parse(raw []byte) ([]Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidXML, err)
	}
	root := tree.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: documento vacío", domain.ErrInvalidXML)
	}

	nodes := findBySuffix(root, "Documento")
	if len(nodes) == 0 {
		// Sin etiqueta Documento: tratar la raíz como documento único.
		nodes = []*etree.Element{root}
	}

	docs := make([]Document, 0, len(nodes))
	for _, n := range nodes {
		docs = append(docs, parseDocument(n))
	}
	return docs, nil
}

func parseDocument(doc *etree.Element) Document {
	isCredit := text(doc, "Encabezado", "IdDoc", "TipoDTE") == docTypeCreditNote

	total := number(text(doc, "Totales", "MntTotal"))
	if isCredit {
		total = total.Neg()
	}

	d := Document{
		Folio:        text(doc, "Encabezado", "IdDoc", "Folio"),
		IssueDate:    date(text(doc, "Encabezado", "IdDoc", "FchEmis")),
		PaymentTerms: textOr(defaultPayTerms, doc, "Encabezado", "IdDoc", "FmaPago"),
		Total:        total,
		IsCreditNote: isCredit,
		Issuer: Party{
			RUT:       text(doc, "Encabezado", "Emisor", "RUTEmisor"),
			LegalName: text(doc, "Encabezado", "Emisor", "RznSoc"),
			Contact:   text(doc, "Encabezado", "Receptor", "Contacto"),
			Locality:  text(doc, "Encabezado", "Emisor", "CdgSIISucur"),
		},
		Receiver: Party{
			RUT:       text(doc, "Encabezado", "Receptor", "RUTRecep"),
			LegalName: text(doc, "Encabezado", "Receptor", "RznSocRecep"),
			Address:   text(doc, "Encabezado", "Receptor", "DirRecep"),
			Contact:   text(doc, "Encabezado", "Receptor", "Contacto"),
		},
	}

	for _, det := range findBySuffix(doc, "Detalle") {
		d.Items = append(d.Items, parseItem(det, isCredit))
	}
	return d
}

func parseItem(det *etree.Element, isCredit bool) Item {
	qty := number(firstText(det, "Cantidad", "QtyItem"))
	price := number(firstText(det, "PrecioUnitario", "PrcItem"))

	code := firstText(det, "CdgItem/VlrCodigo", "CdgItem/TpoCodigo")
	if code == "" {
		code = DefaultItemCode
	}

	// El neto SIEMPRE es precio × cantidad × signo; MontoItem se ignora.
	net := price.Mul(qty)
	if isCredit {
		net = net.Neg()
	}
	return Item{
		Name:      textOr(DefaultItemName, det, "NmbItem"),
		Code:      code,
		Unit:      textOr(DefaultItemUnit, det, "UnmdItem"),
		Quantity:  qty,
		UnitPrice: price,
		Net:       net,
	}
}

// findBySuffix busca descendientes cuyo tag local termina en suffix. Los DTE
// llegan con y sin namespace según el emisor, así que se matchea por sufijo.
func findBySuffix(el *etree.Element, suffix string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if strings.HasSuffix(child.Tag, suffix) {
				out = append(out, child)
				continue // no descender dentro de un match (detalles anidados)
			}
			walk(child)
		}
	}
	walk(el)
	return out
}

// text navega la ruta por sufijo de tag y devuelve el texto recortado.
func text(el *etree.Element, path ...string) string {
	cur := el
	for _, tag := range path {
		var next *etree.Element
		for _, child := range cur.ChildElements() {
			if strings.HasSuffix(child.Tag, tag) {
				next = child
				break
			}
		}
		if next == nil {
			// Ruta no presente como hijos directos: probar descendientes.
			if found := findBySuffix(cur, tag); len(found) > 0 {
				next = found[0]
			} else {
				return ""
			}
		}
		cur = next
	}
	return strings.TrimSpace(cur.Text())
}

func textOr(def string, el *etree.Element, path ...string) string {
	if v := text(el, path...); v != "" {
		return v
	}
	return def
}

// firstText devuelve el primer valor no vacío entre varias rutas alternativas
// separadas por "/" (los emisores usan etiquetas distintas para el mismo dato).
func firstText(el *etree.Element, paths ...string) string {
	for _, p := range paths {
		if v := text(el, strings.Split(p, "/")...); v != "" {
			return v
		}
	}
	return ""
}

// number convierte texto a decimal; valores ausentes o con formato inválido
// degradan a cero en lugar de abortar el documento.
func number(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// date parsea FchEmis (YYYY-MM-DD); fecha inválida degrada a cero.
func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
