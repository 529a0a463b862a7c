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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación Postgres del repositorio de facturas y líneas.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository crea el repositorio sobre un pool o una transacción.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, folio, proveedor_id, fecha_emision, forma_pago, monto_total, es_nota_credito, negocio_id, creado_en`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.Folio, &inv.SupplierID, &inv.IssueDate, &inv.PaymentTerms,
		&inv.Total, &inv.IsCreditNote, &inv.BusinessID, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func collectInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.Folio, &inv.SupplierID, &inv.IssueDate, &inv.PaymentTerms,
			&inv.Total, &inv.IsCreditNote, &inv.BusinessID, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear factura: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

// Create inserta la cabecera de la factura. ON CONFLICT DO NOTHING: si otra
// ingesta ganó la carrera del mismo (proveedor, folio) no hay fila retornada
// y se reporta ErrDuplicate sin abortar la transacción del lote.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	ctx := context.Background()
	query := `INSERT INTO facturas (id, folio, proveedor_id, fecha_emision, forma_pago, monto_total, es_nota_credito, negocio_id, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (proveedor_id, folio) DO NOTHING
		RETURNING creado_en`
	err := r.q.QueryRow(ctx, query,
		inv.ID, inv.Folio, inv.SupplierID, inv.IssueDate, inv.PaymentTerms,
		inv.Total, inv.IsCreditNote, inv.BusinessID,
	).Scan(&inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("crear factura: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("crear factura: %w", err)
	}
	return nil
}

// GetByID busca una factura por su id.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	ctx := context.Background()
	query := `SELECT ` + invoiceColumns + ` FROM facturas WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("buscar factura: %w", err)
	}
	return inv, nil
}

// GetBySupplierAndFolio detecta duplicados antes de insertar.
func (r *InvoiceRepo) GetBySupplierAndFolio(supplierID, folio string) (*entity.Invoice, error) {
	ctx := context.Background()
	query := `SELECT ` + invoiceColumns + ` FROM facturas WHERE proveedor_id = $1 AND folio = $2`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, supplierID, folio))
	if err != nil {
		return nil, fmt.Errorf("buscar factura por folio: %w", err)
	}
	return inv, nil
}

// List devuelve todas las facturas, más recientes primero.
func (r *InvoiceRepo) List() ([]*entity.Invoice, error) {
	ctx := context.Background()
	query := `SELECT ` + invoiceColumns + ` FROM facturas ORDER BY fecha_emision DESC, creado_en DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	return collectInvoices(rows)
}

// SearchBySupplierRUT busca facturas por RUT del proveedor emisor.
func (r *InvoiceRepo) SearchBySupplierRUT(rut string) ([]*entity.Invoice, error) {
	ctx := context.Background()
	query := `SELECT f.id, f.folio, f.proveedor_id, f.fecha_emision, f.forma_pago, f.monto_total, f.es_nota_credito, f.negocio_id, f.creado_en
		FROM facturas f
		JOIN proveedores p ON p.id = f.proveedor_id
		WHERE UPPER(REPLACE(p.rut, '.', '')) = $1
		ORDER BY f.fecha_emision DESC, f.creado_en DESC`
	rows, err := r.q.Query(ctx, query, rut)
	if err != nil {
		return nil, fmt.Errorf("buscar facturas por rut: %w", err)
	}
	return collectInvoices(rows)
}

// AssignBusiness asigna (o reasigna) el negocio de la factura.
func (r *InvoiceRepo) AssignBusiness(invoiceID, businessID string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `UPDATE facturas SET negocio_id = $1 WHERE id = $2`, businessID, invoiceID)
	if err != nil {
		return fmt.Errorf("asignar negocio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la factura; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `DELETE FROM facturas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar factura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const lineColumns = `id, factura_id, producto_id, cantidad, precio_unitario, neto, iva, otros_impuestos, imp_adicional, otros, total_costo, costo_unitario, creado_en`

func scanLine(row pgx.Row) (*entity.InvoiceLine, error) {
	var l entity.InvoiceLine
	err := row.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Net,
		&l.VAT, &l.OtherTaxes, &l.Additional, &l.Misc, &l.TotalCost, &l.UnitCost, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// CreateLine inserta una línea de detalle.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	ctx := context.Background()
	query := `INSERT INTO detalle_factura (id, factura_id, producto_id, cantidad, precio_unitario, neto, iva, otros_impuestos, imp_adicional, otros, total_costo, costo_unitario, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING creado_en`
	err := r.q.QueryRow(ctx, query,
		line.ID, line.InvoiceID, line.ProductID, line.Quantity, line.UnitPrice, line.Net,
		line.VAT, line.OtherTaxes, line.Additional, line.Misc, line.TotalCost, line.UnitCost,
	).Scan(&line.CreatedAt)
	if err != nil {
		return fmt.Errorf("crear línea de factura: %w", err)
	}
	return nil
}

// UpdateLine persiste los montos derivados luego de un recálculo.
func (r *InvoiceRepo) UpdateLine(line *entity.InvoiceLine) error {
	ctx := context.Background()
	query := `UPDATE detalle_factura
		SET neto = $1, imp_adicional = $2, otros = $3, total_costo = $4, costo_unitario = $5
		WHERE id = $6`
	tag, err := r.q.Exec(ctx, query,
		line.Net, line.Additional, line.Misc, line.TotalCost, line.UnitCost, line.ID)
	if err != nil {
		return fmt.Errorf("actualizar línea de factura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LinesByProduct devuelve todas las líneas del producto, más antiguas primero.
func (r *InvoiceRepo) LinesByProduct(productID string) ([]*entity.InvoiceLine, error) {
	ctx := context.Background()
	query := `SELECT d.id, d.factura_id, d.producto_id, d.cantidad, d.precio_unitario, d.neto, d.iva, d.otros_impuestos, d.imp_adicional, d.otros, d.total_costo, d.costo_unitario, d.creado_en
		FROM detalle_factura d
		JOIN facturas f ON f.id = d.factura_id
		WHERE d.producto_id = $1
		ORDER BY f.fecha_emision ASC, d.creado_en ASC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("líneas por producto: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Net,
			&l.VAT, &l.OtherTaxes, &l.Additional, &l.Misc, &l.TotalCost, &l.UnitCost, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear línea: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// LatestLineByProduct devuelve la línea más reciente por fecha de emisión de
// la factura, con el orden de inserción como desempate.
func (r *InvoiceRepo) LatestLineByProduct(productID string) (*entity.InvoiceLine, error) {
	ctx := context.Background()
	query := `SELECT d.id, d.factura_id, d.producto_id, d.cantidad, d.precio_unitario, d.neto, d.iva, d.otros_impuestos, d.imp_adicional, d.otros, d.total_costo, d.costo_unitario, d.creado_en
		FROM detalle_factura d
		JOIN facturas f ON f.id = d.factura_id
		WHERE d.producto_id = $1
		ORDER BY f.fecha_emision DESC, d.creado_en DESC
		LIMIT 1`
	line, err := scanLine(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, fmt.Errorf("última línea del producto: %w", err)
	}
	return line, nil
}

// InvoiceByLine devuelve la cabecera dueña de la línea.
func (r *InvoiceRepo) InvoiceByLine(lineID string) (*entity.Invoice, error) {
	ctx := context.Background()
	query := `SELECT f.id, f.folio, f.proveedor_id, f.fecha_emision, f.forma_pago, f.monto_total, f.es_nota_credito, f.negocio_id, f.creado_en
		FROM facturas f
		JOIN detalle_factura d ON d.factura_id = f.id
		WHERE d.id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, lineID))
	if err != nil {
		return nil, fmt.Errorf("factura de la línea: %w", err)
	}
	return inv, nil
}
