package dto

import "github.com/shopspring/decimal"

// DashboardResponse agregados para la pantalla principal del panel.
type DashboardResponse struct {
	PriceHistory    []MonthValue      `json:"historial_precios"`
	MonthlyInvoices []MonthValue      `json:"facturas_mensuales"`
	SupplierAvgs    []SupplierAverage `json:"promedios_proveedor"`
}

// MonthValue par (mes, valor) para series mensuales.
type MonthValue struct {
	Month string          `json:"mes"`
	Value decimal.Decimal `json:"valor"`
}

// SupplierAverage precio unitario promedio por proveedor.
type SupplierAverage struct {
	Supplier string          `json:"proveedor"`
	Average  decimal.Decimal `json:"precio_promedio"`
}
