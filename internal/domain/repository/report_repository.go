package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/factorg/factorg-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. Los punteros nil no filtran.
// BusinessID se fuerza desde el middleware para usuarios no administradores.
type ProductFilter struct {
	Name         string
	Code         string
	Folio        string
	AdminCodeID  string
	CategoryID   string
	BusinessID   string
	BusinessName string
	DateFrom     *time.Time
	DateTo       *time.Time
	Limit        int
	Offset       int
}

// ProductRow una fila del reporte: producto + su línea más reciente con los
// campos crudos y derivados, más los subobjetos denormalizados.
type ProductRow struct {
	Product    entity.Product
	AdminCode  *entity.AdminCode
	Category   *entity.Category
	ReadingCod *entity.ReadingCode
	Folio      string
	IssueDate  *time.Time
	IsCredit   bool
	UnitPrice  decimal.Decimal
	Net        decimal.Decimal
	VAT        decimal.Decimal
	OtherTaxes decimal.Decimal
	Additional decimal.Decimal
	Misc       int64
	TotalCost  decimal.Decimal
	UnitCost   decimal.Decimal
}

// PricePoint un punto del historial de precios de un producto.
type PricePoint struct {
	Month        string // YYYY-MM de la fecha de emisión
	NetUnitPrice decimal.Decimal
	UnitCost     decimal.Decimal
}

// MonthlyTotal total facturado por mes (dashboard).
type MonthlyTotal struct {
	Month string
	Total decimal.Decimal
}

// SupplierAverage precio unitario promedio por proveedor (dashboard).
type SupplierAverage struct {
	Supplier string
	Average  decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
type ReportRepository interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]ProductRow, int, error)
	// PriceHistory serie (mes, precio unitario neto, costo unitario) ordenada
	// por fecha de emisión ascendente.
	PriceHistory(ctx context.Context, productID string) ([]PricePoint, error)
	MonthlyInvoiceTotals(ctx context.Context) ([]MonthlyTotal, error)
	MonthlyAveragePrices(ctx context.Context) ([]MonthlyTotal, error)
	SupplierAverages(ctx context.Context) ([]SupplierAverage, error)
}
