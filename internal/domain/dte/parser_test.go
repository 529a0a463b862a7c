package dte_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/dte"
)

const facturaXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<EnvioDTE xmlns="http://www.sii.cl/SiiDte">
  <SetDTE>
    <DTE>
      <Documento>
        <Encabezado>
          <IdDoc>
            <TipoDTE>33</TipoDTE>
            <Folio>12345</Folio>
            <FchEmis>2024-03-15</FchEmis>
            <FmaPago>2</FmaPago>
          </IdDoc>
          <Emisor>
            <RUTEmisor>76.543.210-5</RUTEmisor>
            <RznSoc>Molinos del Sur SpA</RznSoc>
          </Emisor>
          <Receptor>
            <RUTRecep>77.111.222-3</RUTRecep>
            <RznSocRecep>Panadería Central Ltda</RznSocRecep>
            <DirRecep>Av. Principal 100</DirRecep>
          </Receptor>
        </Encabezado>
        <Detalle>
          <NmbItem>Harina Especial Premium</NmbItem>
          <CdgItem>
            <TpoCodigo>INT1</TpoCodigo>
            <VlrCodigo>HAR-001</VlrCodigo>
          </CdgItem>
          <QtyItem>10</QtyItem>
          <UnmdItem>SAC</UnmdItem>
          <PrcItem>15000</PrcItem>
          <MontoItem>999999</MontoItem>
        </Detalle>
        <Detalle>
          <NmbItem>Levadura Fresca</NmbItem>
          <QtyItem>2.5</QtyItem>
          <PrcItem>3200</PrcItem>
        </Detalle>
        <Totales>
          <MntTotal>186500</MntTotal>
        </Totales>
      </Documento>
    </DTE>
  </SetDTE>
</EnvioDTE>`

const notaCreditoXML = `<DTE>
  <Documento>
    <Encabezado>
      <IdDoc>
        <TipoDTE>61</TipoDTE>
        <Folio>777</Folio>
        <FchEmis>2024-04-01</FchEmis>
      </IdDoc>
      <Emisor>
        <RUTEmisor>76543210-5</RUTEmisor>
        <RznSoc>Molinos del Sur SpA</RznSoc>
      </Emisor>
    </Encabezado>
    <Detalle>
      <NmbItem>Harina Especial Premium</NmbItem>
      <QtyItem>3</QtyItem>
      <PrcItem>15000</PrcItem>
    </Detalle>
    <Totales>
      <MntTotal>53550</MntTotal>
    </Totales>
  </Documento>
</DTE>`

func TestParse_FacturaCompleta(t *testing.T) {
	docs, err := dte.Parse([]byte(facturaXML))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "12345", doc.Folio)
	assert.Equal(t, "2024-03-15", doc.IssueDate.Format("2006-01-02"))
	assert.Equal(t, "2", doc.PaymentTerms)
	assert.False(t, doc.IsCreditNote)
	assert.Equal(t, "76.543.210-5", doc.Issuer.RUT)
	assert.Equal(t, "Molinos del Sur SpA", doc.Issuer.LegalName)
	assert.Equal(t, "77.111.222-3", doc.Receiver.RUT)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(186500)))

	require.Len(t, doc.Items, 2)
	first := doc.Items[0]
	assert.Equal(t, "Harina Especial Premium", first.Name)
	assert.Equal(t, "HAR-001", first.Code, "VlrCodigo tiene prioridad sobre TpoCodigo")
	assert.Equal(t, "SAC", first.Unit)
	assert.True(t, first.Quantity.Equal(decimal.NewFromInt(10)))
	// el neto se recalcula desde precio × cantidad; MontoItem (999999) se ignora
	assert.True(t, first.Net.Equal(decimal.NewFromInt(150000)))

	second := doc.Items[1]
	assert.Equal(t, "N/A", second.Code, "sin CdgItem degrada al código por defecto")
	assert.Equal(t, "UN", second.Unit)
	assert.True(t, second.Net.Equal(decimal.NewFromInt(8000)), "2.5 × 3200")
}

func TestParse_NotaCredito_InvierteSignos(t *testing.T) {
	docs, err := dte.Parse([]byte(notaCreditoXML))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.True(t, doc.IsCreditNote)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(-53550)), "el total declarado invierte signo")
	require.Len(t, doc.Items, 1)
	assert.True(t, doc.Items[0].Net.Equal(decimal.NewFromInt(-45000)), "-(3 × 15000)")
	// forma de pago ausente degrada al default
	assert.Equal(t, "Contado", doc.PaymentTerms)
}

func TestParse_VariosDocumentosEnUnEnvio(t *testing.T) {
	batch := `<EnvioDTE><SetDTE>
	<DTE><Documento><Encabezado><IdDoc><TipoDTE>33</TipoDTE><Folio>1</Folio></IdDoc>
	<Emisor><RUTEmisor>1-9</RUTEmisor></Emisor></Encabezado></Documento></DTE>
	<DTE><Documento><Encabezado><IdDoc><TipoDTE>33</TipoDTE><Folio>2</Folio></IdDoc>
	<Emisor><RUTEmisor>1-9</RUTEmisor></Emisor></Encabezado></Documento></DTE>
	</SetDTE></EnvioDTE>`

	docs, err := dte.Parse([]byte(batch))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "1", docs[0].Folio)
	assert.Equal(t, "2", docs[1].Folio)
}

func TestParse_XMLMalFormado(t *testing.T) {
	_, err := dte.Parse([]byte("<DTE><Documento>"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidXML)
}

func TestParse_CamposAusentesDegradanADefaults(t *testing.T) {
	minimal := `<DTE><Documento>
	<Encabezado><IdDoc><Folio>9</Folio><FchEmis>fecha-mala</FchEmis></IdDoc></Encabezado>
	<Detalle><QtyItem>no-numero</QtyItem></Detalle>
	</Documento></DTE>`

	docs, err := dte.Parse([]byte(minimal))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.True(t, doc.IssueDate.IsZero(), "fecha inválida degrada a cero")
	require.Len(t, doc.Items, 1)
	item := doc.Items[0]
	assert.Equal(t, "Producto sin nombre", item.Name)
	assert.Equal(t, "N/A", item.Code)
	assert.Equal(t, "UN", item.Unit)
	assert.True(t, item.Quantity.IsZero(), "cantidad inválida degrada a cero")
}
