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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación Postgres del repositorio de categorías.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository crea el repositorio sobre un pool o una transacción.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByID busca una categoría por id.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	ctx := context.Background()
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT id, nombre FROM categorias WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar categoría: %w", err)
	}
	return &c, nil
}

// List devuelve todas las categorías ordenadas por nombre.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `SELECT id, nombre FROM categorias ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("escanear categoría: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Create inserta una categoría.
func (r *CategoryRepo) Create(c *entity.Category) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `INSERT INTO categorias (id, nombre) VALUES ($1, $2)`, c.ID, c.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("crear categoría: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("crear categoría: %w", err)
	}
	return nil
}
