package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

var _ repository.ReadingCodeRepository = (*ReadingCodeRepo)(nil)

// ReadingCodeRepo implementación Postgres del repositorio de códigos de lectura.
type ReadingCodeRepo struct {
	q Querier
}

// NewReadingCodeRepository crea el repositorio sobre un pool o una transacción.
func NewReadingCodeRepository(q Querier) *ReadingCodeRepo {
	return &ReadingCodeRepo{q: q}
}

const readingCodeColumns = `id, valor, clave_nombre, codigo_origen, rut_proveedor, cod_admin_id`

// GetByValue busca la huella exacta; nil si no existe.
func (r *ReadingCodeRepo) GetByValue(value string) (*entity.ReadingCode, error) {
	ctx := context.Background()
	query := `SELECT ` + readingCodeColumns + ` FROM codigos_lectura WHERE valor = $1`
	var rc entity.ReadingCode
	err := r.q.QueryRow(ctx, query, value).Scan(
		&rc.ID, &rc.Value, &rc.NameKey, &rc.OriginCode, &rc.SupplierRUT, &rc.AdminCodeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar código de lectura: %w", err)
	}
	return &rc, nil
}

// Create inserta la huella; devuelve ErrDuplicate si el valor ya existe
// (carrera de inserción concurrente, el resolutor reintenta). ON CONFLICT DO
// NOTHING en lugar de dejar que salte el 23505: un error de unicidad dentro
// de la transacción de ingesta la abortaría entera (25P02) y la carrera debe
// resolverse sin perder el lote.
func (r *ReadingCodeRepo) Create(rc *entity.ReadingCode) error {
	ctx := context.Background()
	query := `INSERT INTO codigos_lectura (id, valor, clave_nombre, codigo_origen, rut_proveedor, cod_admin_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (valor) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		rc.ID, rc.Value, rc.NameKey, rc.OriginCode, rc.SupplierRUT, rc.AdminCodeID)
	if err != nil {
		return fmt.Errorf("crear código de lectura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("crear código de lectura: %w", domain.ErrDuplicate)
	}
	return nil
}

// SetAdminCode asigna o limpia la clasificación compartida de la huella.
func (r *ReadingCodeRepo) SetAdminCode(id string, adminCodeID *string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `UPDATE codigos_lectura SET cod_admin_id = $1 WHERE id = $2`, adminCodeID, id)
	if err != nil {
		return fmt.Errorf("asignar cod_admin al código de lectura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
