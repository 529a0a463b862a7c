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

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación Postgres del repositorio de negocios.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository crea el repositorio sobre un pool o una transacción.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

const businessColumns = `id, nombre, rut_receptor, COALESCE(razon_social, ''), COALESCE(email, ''), COALESCE(direccion, '')`

func scanBusiness(row pgx.Row) (*entity.Business, error) {
	var b entity.Business
	err := row.Scan(&b.ID, &b.Name, &b.ReceiverRUT, &b.LegalName, &b.Email, &b.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// GetByID busca un negocio por id.
func (r *BusinessRepo) GetByID(id string) (*entity.Business, error) {
	ctx := context.Background()
	query := `SELECT ` + businessColumns + ` FROM nombre_negocio WHERE id = $1`
	b, err := scanBusiness(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("buscar negocio: %w", err)
	}
	return b, nil
}

// GetByReceiverRUT busca por RUT normalizado del receptor.
func (r *BusinessRepo) GetByReceiverRUT(rut string) (*entity.Business, error) {
	ctx := context.Background()
	query := `SELECT ` + businessColumns + `
		FROM nombre_negocio
		WHERE UPPER(REPLACE(rut_receptor, '.', '')) = $1`
	b, err := scanBusiness(r.q.QueryRow(ctx, query, rut))
	if err != nil {
		return nil, fmt.Errorf("buscar negocio por rut receptor: %w", err)
	}
	return b, nil
}

// List devuelve todos los negocios ordenados por nombre.
func (r *BusinessRepo) List() ([]*entity.Business, error) {
	ctx := context.Background()
	query := `SELECT ` + businessColumns + ` FROM nombre_negocio ORDER BY nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar negocios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Business
	for rows.Next() {
		var b entity.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.ReceiverRUT, &b.LegalName, &b.Email, &b.Address); err != nil {
			return nil, fmt.Errorf("escanear negocio: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// Create inserta un negocio.
func (r *BusinessRepo) Create(b *entity.Business) error {
	ctx := context.Background()
	query := `INSERT INTO nombre_negocio (id, nombre, rut_receptor, razon_social, email, direccion)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.ReceiverRUT, nullIfEmpty(b.LegalName), nullIfEmpty(b.Email), nullIfEmpty(b.Address))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("crear negocio: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("crear negocio: %w", err)
	}
	return nil
}

// Update persiste los datos del negocio.
func (r *BusinessRepo) Update(b *entity.Business) error {
	ctx := context.Background()
	query := `UPDATE nombre_negocio
		SET nombre = $1, rut_receptor = $2, razon_social = $3, email = $4, direccion = $5
		WHERE id = $6`
	tag, err := r.q.Exec(ctx, query,
		b.Name, b.ReceiverRUT, nullIfEmpty(b.LegalName), nullIfEmpty(b.Email), nullIfEmpty(b.Address), b.ID)
	if err != nil {
		return fmt.Errorf("actualizar negocio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
