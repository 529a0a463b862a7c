package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

var _ repository.AdminCodeRepository = (*AdminCodeRepo)(nil)

// AdminCodeRepo implementación Postgres del maestro de códigos admin.
type AdminCodeRepo struct {
	q Querier
}

// NewAdminCodeRepository crea el repositorio sobre un pool o una transacción.
func NewAdminCodeRepository(q Querier) *AdminCodeRepo {
	return &AdminCodeRepo{q: q}
}

const adminCodeColumns = `id, codigo, nombre_producto, COALESCE(familia, ''), COALESCE(area, ''), factor_um, COALESCE(unidad_medida, ''), porcentaje_adicional`

// GetByID busca una entrada del maestro por id.
func (r *AdminCodeRepo) GetByID(id string) (*entity.AdminCode, error) {
	ctx := context.Background()
	query := `SELECT ` + adminCodeColumns + ` FROM codigos_admin_maestro WHERE id = $1`
	var ac entity.AdminCode
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ac.ID, &ac.Code, &ac.ProductName, &ac.Family, &ac.Area, &ac.UMFactor, &ac.UnitLabel, &ac.Percentage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar cod_admin: %w", err)
	}
	return &ac, nil
}

// List devuelve el maestro completo ordenado por código.
func (r *AdminCodeRepo) List() ([]*entity.AdminCode, error) {
	ctx := context.Background()
	query := `SELECT ` + adminCodeColumns + ` FROM codigos_admin_maestro ORDER BY codigo`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar codigos_admin: %w", err)
	}
	defer rows.Close()

	var out []*entity.AdminCode
	for rows.Next() {
		var ac entity.AdminCode
		if err := rows.Scan(&ac.ID, &ac.Code, &ac.ProductName, &ac.Family, &ac.Area,
			&ac.UMFactor, &ac.UnitLabel, &ac.Percentage); err != nil {
			return nil, fmt.Errorf("escanear cod_admin: %w", err)
		}
		out = append(out, &ac)
	}
	return out, rows.Err()
}

// Create inserta una entrada del maestro.
func (r *AdminCodeRepo) Create(ac *entity.AdminCode) error {
	ctx := context.Background()
	query := `INSERT INTO codigos_admin_maestro (id, codigo, nombre_producto, familia, area, factor_um, unidad_medida, porcentaje_adicional)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		ac.ID, ac.Code, ac.ProductName, nullIfEmpty(ac.Family), nullIfEmpty(ac.Area),
		ac.UMFactor, nullIfEmpty(ac.UnitLabel), ac.Percentage)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("crear cod_admin: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("crear cod_admin: %w", err)
	}
	return nil
}

// Update persiste la entrada completa del maestro.
func (r *AdminCodeRepo) Update(ac *entity.AdminCode) error {
	ctx := context.Background()
	query := `UPDATE codigos_admin_maestro
		SET codigo = $1, nombre_producto = $2, familia = $3, area = $4, factor_um = $5, unidad_medida = $6, porcentaje_adicional = $7
		WHERE id = $8`
	tag, err := r.q.Exec(ctx, query,
		ac.Code, ac.ProductName, nullIfEmpty(ac.Family), nullIfEmpty(ac.Area),
		ac.UMFactor, nullIfEmpty(ac.UnitLabel), ac.Percentage, ac.ID)
	if err != nil {
		return fmt.Errorf("actualizar cod_admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePercentage persiste el porcentaje ya normalizado a fracción [0,1].
func (r *AdminCodeRepo) UpdatePercentage(id string, pct decimal.Decimal) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `UPDATE codigos_admin_maestro SET porcentaje_adicional = $1 WHERE id = $2`, pct, id)
	if err != nil {
		return fmt.Errorf("actualizar porcentaje: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
