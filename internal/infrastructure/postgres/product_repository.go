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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación Postgres del repositorio de productos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository crea el repositorio sobre un pool o una transacción.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, nombre, codigo, unidad, cantidad, proveedor_id, categoria_id, cod_admin_id, cod_lec_id, creado_en`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Unit, &p.Quantity, &p.SupplierID,
		&p.CategoryID, &p.AdminCodeID, &p.ReadingCodeID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Unit, &p.Quantity, &p.SupplierID,
			&p.CategoryID, &p.AdminCodeID, &p.ReadingCodeID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear producto: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Create inserta un producto. Cada línea de factura crea su propia fila.
func (r *ProductRepo) Create(p *entity.Product) error {
	ctx := context.Background()
	query := `INSERT INTO productos (id, nombre, codigo, unidad, cantidad, proveedor_id, categoria_id, cod_admin_id, cod_lec_id, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING creado_en`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.Name, p.Code, p.Unit, p.Quantity, p.SupplierID,
		p.CategoryID, p.AdminCodeID, p.ReadingCodeID,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("crear producto: %w", err)
	}
	return nil
}

// GetByID busca un producto por su id.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	ctx := context.Background()
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	return p, nil
}

// Update persiste los campos editables del producto.
func (r *ProductRepo) Update(p *entity.Product) error {
	ctx := context.Background()
	query := `UPDATE productos
		SET nombre = $1, codigo = $2, unidad = $3, cantidad = $4, categoria_id = $5, cod_admin_id = $6
		WHERE id = $7`
	tag, err := r.q.Exec(ctx, query,
		p.Name, p.Code, p.Unit, p.Quantity, p.CategoryID, p.AdminCodeID, p.ID)
	if err != nil {
		return fmt.Errorf("actualizar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SiblingsByReadingCode devuelve los productos que comparten la misma huella.
func (r *ProductRepo) SiblingsByReadingCode(readingCodeID string) ([]*entity.Product, error) {
	ctx := context.Background()
	query := `SELECT ` + productColumns + ` FROM productos WHERE cod_lec_id = $1 ORDER BY creado_en ASC`
	rows, err := r.q.Query(ctx, query, readingCodeID)
	if err != nil {
		return nil, fmt.Errorf("hermanos por código de lectura: %w", err)
	}
	return collectProducts(rows)
}

// LatestClassifiedByCodeAndSupplier busca el producto ya clasificado más
// reciente del mismo código de origen y proveedor, para heredar el cod_admin
// durante la ingesta.
func (r *ProductRepo) LatestClassifiedByCodeAndSupplier(code, supplierID string) (*entity.Product, error) {
	ctx := context.Background()
	query := `SELECT ` + productColumns + `
		FROM productos
		WHERE codigo = $1 AND proveedor_id = $2 AND cod_admin_id IS NOT NULL
		ORDER BY creado_en DESC
		LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, code, supplierID))
	if err != nil {
		return nil, fmt.Errorf("último producto clasificado: %w", err)
	}
	return p, nil
}

// SetAdminCode asigna o limpia la clasificación administrativa del producto.
func (r *ProductRepo) SetAdminCode(productID string, adminCodeID *string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `UPDATE productos SET cod_admin_id = $1 WHERE id = $2`, adminCodeID, productID)
	if err != nil {
		return fmt.Errorf("asignar cod_admin al producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetCategory asigna la categoría del producto.
func (r *ProductRepo) SetCategory(productID, categoryID string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `UPDATE productos SET categoria_id = $1 WHERE id = $2`, categoryID, productID)
	if err != nil {
		return fmt.Errorf("asignar categoría al producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ByAdminCode devuelve los productos vinculados directamente al cod_admin.
func (r *ProductRepo) ByAdminCode(adminCodeID string) ([]*entity.Product, error) {
	ctx := context.Background()
	query := `SELECT ` + productColumns + ` FROM productos WHERE cod_admin_id = $1 ORDER BY creado_en ASC`
	rows, err := r.q.Query(ctx, query, adminCodeID)
	if err != nil {
		return nil, fmt.Errorf("productos por cod_admin: %w", err)
	}
	return collectProducts(rows)
}
