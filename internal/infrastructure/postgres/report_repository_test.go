package postgres

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factorg/factorg-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// buildProductWhere — armado del WHERE del listado
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildProductWhere_SinFiltros(t *testing.T) {
	where, args := buildProductWhere(repository.ProductFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildProductWhere_FolioEsSubstring(t *testing.T) {
	where, args := buildProductWhere(repository.ProductFilter{Folio: "1001"})

	// El folio filtra por substring, igual que nombre y código.
	assert.Equal(t, " WHERE f.folio ILIKE $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, "%1001%", args[0])
}

func TestBuildProductWhere_NumeraArgumentosEnOrden(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	f := repository.ProductFilter{
		Name:         "harina",
		Code:         "HAR",
		Folio:        "70",
		AdminCodeID:  "ac-1",
		CategoryID:   "cat-1",
		BusinessID:   "neg-1",
		BusinessName: "central",
		DateFrom:     &from,
		DateTo:       &to,
	}

	where, args := buildProductWhere(f)
	require.Len(t, args, 9)

	// Cada condición usa el placeholder siguiente, sin huecos ni repetidos.
	for i := 1; i <= len(args); i++ {
		assert.Contains(t, where, fmt.Sprintf("$%d", i), "falta el placeholder $%d", i)
	}
	assert.Equal(t, []any{"%harina%", "%HAR%", "%70%", "ac-1", "cat-1", "neg-1", "%central%", from, to}, args)
	assert.Equal(t, 8, strings.Count(where, " AND "))
}

func TestBuildProductWhere_FechasSonRangoInclusivo(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	where, args := buildProductWhere(repository.ProductFilter{DateFrom: &from})

	assert.Equal(t, " WHERE f.fecha_emision >= $1", where)
	assert.Equal(t, []any{from}, args)
}

// ──────────────────────────────────────────────────────────────────────────────
// Forma del listado — productos sin líneas
// ──────────────────────────────────────────────────────────────────────────────

// Los joins a la última línea y su factura son LEFT: un producto cuya única
// factura fue eliminada (las líneas cascadean) debe seguir en el reporte con
// montos en cero, no desaparecer.
func TestProductRowSelect_ConservaProductosSinLineas(t *testing.T) {
	assert.Contains(t, productRowSelect, "LEFT JOIN LATERAL")
	assert.Contains(t, productRowSelect, "LEFT JOIN facturas f ON f.id = d.factura_id")

	// Las columnas de factura y línea toleran NULL en la fila sin línea.
	for _, col := range []string{
		"COALESCE(f.folio, '')",
		"COALESCE(f.es_nota_credito, FALSE)",
		"COALESCE(d.precio_unitario, 0)",
		"COALESCE(d.total_costo, 0)",
		"COALESCE(d.costo_unitario, 0)",
	} {
		assert.Contains(t, productRowSelect, col)
	}
}
