package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación Postgres del repositorio de proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository crea el repositorio sobre un pool o una transacción.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, rut, nombre, forma_pago, COALESCE(direccion, ''), COALESCE(email, ''), creado_en`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.RUT, &s.Name, &s.PayTerms, &s.Address, &s.Email, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByRUT busca por RUT normalizado, ignorando puntos y mayúsculas en lo
// almacenado por si quedaron filas antiguas sin normalizar.
func (r *SupplierRepo) GetByRUT(rut string) (*entity.Supplier, error) {
	ctx := context.Background()
	query := `SELECT ` + supplierColumns + `
		FROM proveedores
		WHERE UPPER(REPLACE(rut, '.', '')) = $1`
	s, err := scanSupplier(r.q.QueryRow(ctx, query, rut))
	if err != nil {
		return nil, fmt.Errorf("buscar proveedor por rut: %w", err)
	}
	return s, nil
}

// Create inserta un proveedor.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	ctx := context.Background()
	query := `INSERT INTO proveedores (id, rut, nombre, forma_pago, direccion, email, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING creado_en`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.RUT, s.Name, s.PayTerms, nullIfEmpty(s.Address), nullIfEmpty(s.Email),
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("crear proveedor: %w", err)
	}
	return nil
}

// List devuelve todos los proveedores ordenados por nombre.
func (r *SupplierRepo) List() ([]*entity.Supplier, error) {
	ctx := context.Background()
	query := `SELECT ` + supplierColumns + ` FROM proveedores ORDER BY nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	defer rows.Close()

	var out []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.RUT, &s.Name, &s.PayTerms, &s.Address, &s.Email, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear proveedor: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
