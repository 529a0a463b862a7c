package costing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factorg/factorg-api/internal/application/costing"
	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
)

func newTestUseCase() (*costing.UseCase, *memStore) {
	store := newMemStore()
	return costing.NewUseCase(&memTxRunner{store: store}), store
}

func strptr(s string) *string { return &s }

// seedProduct producto con una línea en una factura; devuelve el ID de línea.
func seedProduct(s *memStore, productID string, adminCodeID, readingCodeID *string, qty, price int64, credit bool) string {
	invID := "inv-" + productID
	s.invoices[invID] = &entity.Invoice{
		ID:           invID,
		Folio:        "F-" + productID,
		SupplierID:   "prov-1",
		IssueDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		IsCreditNote: credit,
	}
	s.products[productID] = &entity.Product{
		ID:            productID,
		Name:          "Producto " + productID,
		Unit:          "UN",
		Quantity:      decimal.NewFromInt(qty),
		SupplierID:    "prov-1",
		AdminCodeID:   adminCodeID,
		ReadingCodeID: readingCodeID,
	}
	lineID := "line-" + productID
	net := decimal.NewFromInt(qty * price)
	if credit {
		net = net.Neg()
	}
	s.lines[lineID] = &entity.InvoiceLine{
		ID:        lineID,
		InvoiceID: invID,
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(price),
		Net:       net,
		TotalCost: net,
		CreatedAt: time.Now(),
	}
	return lineID
}

// ── Porcentaje adicional ─────────────────────────────────────────────────────

func TestUpdatePercentage_RecalculaCascada(t *testing.T) {
	uc, store := newTestUseCase()
	store.adminCodes["ac-1"] = &entity.AdminCode{ID: "ac-1", Code: "100200", UMFactor: decimal.NewFromInt(1)}
	seedProduct(store, "p1", strptr("ac-1"), nil, 10, 1000, false)
	seedProduct(store, "p2", strptr("ac-1"), nil, 2, 500, false)

	out, err := uc.UpdatePercentage(context.Background(), "p1", "15")
	require.NoError(t, err)

	// "15" se normaliza a fracción y se persiste en el maestro.
	assert.True(t, store.adminCodes["ac-1"].Percentage.Equal(decimal.NewFromFloat(0.15)))

	// Cascada: todas las líneas de todos los productos del cod_admin.
	l1 := store.lines["line-p1"]
	assert.True(t, l1.Additional.Equal(decimal.NewFromInt(1500)), "10000 × 0.15")
	assert.True(t, l1.TotalCost.Equal(decimal.NewFromInt(11500)))
	assert.True(t, l1.UnitCost.Equal(decimal.NewFromInt(1150)), "11500 / 10")

	l2 := store.lines["line-p2"]
	assert.True(t, l2.Additional.Equal(decimal.NewFromInt(150)))
	assert.True(t, l2.TotalCost.Equal(decimal.NewFromInt(1150)))

	assert.Equal(t, []string{"p1", "p2"}, out.AffectedIDs, "ordenados y completos")
	require.NotNil(t, out.Product)
	assert.True(t, out.Product.Percentage.Equal(decimal.NewFromFloat(0.15)))
	assert.True(t, out.Product.TotalCost.Equal(decimal.NewFromInt(11500)))
}

func TestUpdatePercentage_SinClasificacion(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", nil, nil, 10, 1000, false)

	_, err := uc.UpdatePercentage(context.Background(), "p1", "15")
	assert.ErrorIs(t, err, domain.ErrNoClassification)
}

func TestUpdatePercentage_EntradaInvalida(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", strptr("ac-1"), nil, 10, 1000, false)

	_, err := uc.UpdatePercentage(context.Background(), "p1", "quince")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePercentage_ProductoInexistente(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.UpdatePercentage(context.Background(), "no-existe", "15")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Asignación de cod_admin ──────────────────────────────────────────────────

func TestAssignAdminCodeToProduct_PropagaAHermanos(t *testing.T) {
	uc, store := newTestUseCase()
	store.adminCodes["ac-2"] = &entity.AdminCode{
		ID:         "ac-2",
		Code:       "100300",
		UMFactor:   decimal.NewFromInt(25),
		Percentage: decimal.NewFromFloat(0.10),
	}
	store.readingCodes["rc-1"] = &entity.ReadingCode{ID: "rc-1", Value: "76543210-5_HARINA_HAR001"}
	seedProduct(store, "p1", nil, strptr("rc-1"), 4, 25000, false)
	seedProduct(store, "p2", nil, strptr("rc-1"), 2, 25000, false)

	out, err := uc.AssignAdminCodeToProduct(context.Background(), "p1", "ac-2")
	require.NoError(t, err)

	// La huella queda clasificada y arrastra a todos sus productos.
	require.NotNil(t, store.readingCodes["rc-1"].AdminCodeID)
	assert.Equal(t, "ac-2", *store.readingCodes["rc-1"].AdminCodeID)
	assert.Equal(t, "ac-2", *store.products["p1"].AdminCodeID)
	assert.Equal(t, "ac-2", *store.products["p2"].AdminCodeID)
	assert.Equal(t, []string{"p1", "p2"}, out.AffectedIDs)

	l1 := store.lines["line-p1"]
	assert.True(t, l1.Additional.Equal(decimal.NewFromInt(10000)), "100000 × 0.10")
	assert.True(t, l1.TotalCost.Equal(decimal.NewFromInt(110000)))
	assert.True(t, l1.UnitCost.Equal(decimal.NewFromInt(1100)), "110000 / (4 × 25)")

	l2 := store.lines["line-p2"]
	assert.True(t, l2.UnitCost.Equal(decimal.NewFromInt(1100)), "mismo costo unitario para el hermano")
}

func TestAssignAdminCodeToProduct_SinHuella(t *testing.T) {
	uc, store := newTestUseCase()
	store.adminCodes["ac-2"] = &entity.AdminCode{ID: "ac-2", Code: "100300", UMFactor: decimal.NewFromInt(1)}
	seedProduct(store, "p1", nil, nil, 3, 2000, false)

	out, err := uc.AssignAdminCodeToProduct(context.Background(), "p1", "ac-2")
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, out.AffectedIDs, "sin cod_lec solo se afecta el producto editado")
	assert.Equal(t, "ac-2", *store.products["p1"].AdminCodeID)
}

func TestAssignAdminCodeToProduct_CodAdminInexistente(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", nil, nil, 3, 2000, false)

	_, err := uc.AssignAdminCodeToProduct(context.Background(), "p1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignAdminCodeToReadingCode(t *testing.T) {
	uc, store := newTestUseCase()
	store.adminCodes["ac-2"] = &entity.AdminCode{
		ID:         "ac-2",
		Code:       "100300",
		UMFactor:   decimal.NewFromInt(1),
		Percentage: decimal.NewFromFloat(0.05),
	}
	store.readingCodes["rc-1"] = &entity.ReadingCode{ID: "rc-1", Value: "76543210-5_LEVADURA_NC_0a1b2c3d"}
	seedProduct(store, "p1", nil, strptr("rc-1"), 2, 3200, false)

	out, err := uc.AssignAdminCodeToReadingCode(context.Background(), "76543210-5_LEVADURA_NC_0a1b2c3d", "ac-2")
	require.NoError(t, err)

	assert.Equal(t, "ac-2", *store.readingCodes["rc-1"].AdminCodeID)
	assert.Equal(t, []string{"p1"}, out.AffectedIDs)
	assert.True(t, store.lines["line-p1"].Additional.Equal(decimal.NewFromInt(320)), "6400 × 0.05")
}

func TestAssignAdminCodeToReadingCode_ValorInexistente(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.AssignAdminCodeToReadingCode(context.Background(), "no-existe", "ac-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Ajuste manual (otros) ────────────────────────────────────────────────────

func TestUpdateMisc_RecalculaUltimaLinea(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", nil, nil, 5, 3000, false)

	out, err := uc.UpdateMisc(context.Background(), "p1", 500)
	require.NoError(t, err)

	line := store.lines["line-p1"]
	assert.Equal(t, int64(500), line.Misc)
	assert.True(t, line.TotalCost.Equal(decimal.NewFromInt(15500)), "15000 + 500")
	assert.True(t, line.UnitCost.Equal(decimal.NewFromInt(3100)))
	assert.Equal(t, []string{"p1"}, out.AffectedIDs)
}

func TestUpdateMisc_ConservaSignoEnNotaCredito(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", nil, nil, 5, 3000, true)

	out, err := uc.UpdateMisc(context.Background(), "p1", 500)
	require.NoError(t, err)

	// El neto es negativo en la NC pero el ajuste manual conserva su signo.
	line := store.lines["line-p1"]
	assert.True(t, line.Net.Equal(decimal.NewFromInt(-15000)))
	assert.True(t, line.TotalCost.Equal(decimal.NewFromInt(-14500)), "-15000 + 500")
	assert.True(t, line.UnitCost.Equal(decimal.NewFromInt(-2900)))
	require.NotNil(t, out.Product)
	assert.True(t, out.Product.IsCreditNote)
}

func TestUpdateMisc_SinLineas(t *testing.T) {
	uc, store := newTestUseCase()
	store.products["p1"] = &entity.Product{ID: "p1", Name: "Sin líneas", SupplierID: "prov-1"}

	_, err := uc.UpdateMisc(context.Background(), "p1", 500)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Recalculo por maestro ────────────────────────────────────────────────────

func TestRecalculateAdminCode_AplicaFactorUMVigente(t *testing.T) {
	uc, store := newTestUseCase()
	store.adminCodes["ac-1"] = &entity.AdminCode{ID: "ac-1", Code: "100200", UMFactor: decimal.NewFromInt(1)}
	seedProduct(store, "p1", strptr("ac-1"), nil, 4, 10000, false)

	// Edición del maestro: el factor UM pasa de 1 a 10.
	store.adminCodes["ac-1"].UMFactor = decimal.NewFromInt(10)

	affected, err := uc.RecalculateAdminCode(context.Background(), "ac-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, affected)
	line := store.lines["line-p1"]
	assert.True(t, line.TotalCost.Equal(decimal.NewFromInt(40000)))
	assert.True(t, line.UnitCost.Equal(decimal.NewFromInt(1000)), "40000 / (4 × 10)")
}

func TestRecalculateAdminCode_Inexistente(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.RecalculateAdminCode(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
