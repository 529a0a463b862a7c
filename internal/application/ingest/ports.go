package ingest

import (
	"context"

	"github.com/factorg/factorg-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda la carga de un XML (todas sus facturas,
// productos y líneas) es una sola unidad atómica: cualquier fallo de
// persistencia revierte el lote completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Repos repositorios atados a la transacción en curso.
type Repos struct {
	Suppliers    repository.SupplierRepository
	Invoices     repository.InvoiceRepository
	Products     repository.ProductRepository
	ReadingCodes repository.ReadingCodeRepository
	AdminCodes   repository.AdminCodeRepository
	Businesses   repository.BusinessRepository
}
