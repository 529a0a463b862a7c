package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appcosting "github.com/factorg/factorg-api/internal/application/costing"
	"github.com/factorg/factorg-api/internal/application/ingest"
)

// Ensure TxRunner implementa los puertos de ingesta y costos.
var _ ingest.TxRunner = (*IngestTxRunner)(nil)
var _ appcosting.TxRunner = (*CostingTxRunner)(nil)

// IngestTxRunner ejecuta la ingesta de un XML completo dentro de una
// transacción: cualquier error revierte el lote entero.
type IngestTxRunner struct {
	pool *pgxpool.Pool
}

// NewIngestTxRunner construye el runner con el pool.
func NewIngestTxRunner(pool *pgxpool.Pool) *IngestTxRunner {
	return &IngestTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *IngestTxRunner) Run(ctx context.Context, fn func(repos ingest.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ingest.Repos{
		Suppliers:    NewSupplierRepository(tx),
		Invoices:     NewInvoiceRepository(tx),
		Products:     NewProductRepository(tx),
		ReadingCodes: NewReadingCodeRepository(tx),
		AdminCodes:   NewAdminCodeRepository(tx),
		Businesses:   NewBusinessRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CostingTxRunner ejecuta una cascada de propagación/recálculo dentro de una
// transacción: un fallo parcial no deja estado a medio propagar.
type CostingTxRunner struct {
	pool *pgxpool.Pool
}

// NewCostingTxRunner construye el runner con el pool.
func NewCostingTxRunner(pool *pgxpool.Pool) *CostingTxRunner {
	return &CostingTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *CostingTxRunner) Run(ctx context.Context, fn func(repos appcosting.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := appcosting.Repos{
		Products:     NewProductRepository(tx),
		Invoices:     NewInvoiceRepository(tx),
		ReadingCodes: NewReadingCodeRepository(tx),
		AdminCodes:   NewAdminCodeRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
