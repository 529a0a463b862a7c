package costing

import (
	"context"

	"github.com/factorg/factorg-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD. Una cascada de
// propagación (cod_admin nuevo sobre N hermanos) es una sola unidad atómica:
// un fallo parcial revierte toda la cascada.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Repos repositorios atados a la transacción en curso.
type Repos struct {
	Products     repository.ProductRepository
	Invoices     repository.InvoiceRepository
	ReadingCodes repository.ReadingCodeRepository
	AdminCodes   repository.AdminCodeRepository
}
