package usecase

import (
	"context"

	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

// DashboardUseCase agregados de la pantalla principal.
type DashboardUseCase struct {
	report repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(report repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{report: report}
}

// Summary historial de precios promedio, totales mensuales y promedios por
// proveedor.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	prices, err := uc.report.MonthlyAveragePrices(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := uc.report.MonthlyInvoiceTotals(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.report.SupplierAverages(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		PriceHistory:    make([]dto.MonthValue, 0, len(prices)),
		MonthlyInvoices: make([]dto.MonthValue, 0, len(totals)),
		SupplierAvgs:    make([]dto.SupplierAverage, 0, len(suppliers)),
	}
	for _, p := range prices {
		out.PriceHistory = append(out.PriceHistory, dto.MonthValue{Month: p.Month, Value: p.Total})
	}
	for _, t := range totals {
		out.MonthlyInvoices = append(out.MonthlyInvoices, dto.MonthValue{Month: t.Month, Value: t.Total})
	}
	for _, s := range suppliers {
		out.SupplierAvgs = append(out.SupplierAvgs, dto.SupplierAverage{Supplier: s.Supplier, Average: s.Average})
	}
	return out, nil
}
