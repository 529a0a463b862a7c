package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el listado maestro de productos,
// el historial de precios y el dashboard. Todas las filas monetarias salen de
// la línea más reciente de cada producto (LATERAL + LIMIT 1).
type ReportRepo struct {
	q Querier
}

// NewReportRepository crea el repositorio sobre un pool o una transacción.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// selección base: producto + última línea + denormalizados. Los joins a la
// línea y su factura son LEFT: un producto cuya factura se eliminó (las
// líneas cascadean) sigue apareciendo, con montos en cero.
const productRowSelect = `
	SELECT p.id, p.nombre, p.codigo, p.unidad, p.cantidad, p.proveedor_id,
	       p.categoria_id, p.cod_admin_id, p.cod_lec_id, p.creado_en,
	       COALESCE(f.folio, ''), f.fecha_emision, COALESCE(f.es_nota_credito, FALSE),
	       COALESCE(d.precio_unitario, 0), COALESCE(d.neto, 0), COALESCE(d.iva, 0),
	       COALESCE(d.otros_impuestos, 0), COALESCE(d.imp_adicional, 0),
	       COALESCE(d.otros, 0), COALESCE(d.total_costo, 0), COALESCE(d.costo_unitario, 0),
	       ca.id, ca.codigo, ca.nombre_producto, COALESCE(ca.familia, ''), COALESCE(ca.area, ''),
	       ca.factor_um, COALESCE(ca.unidad_medida, ''), ca.porcentaje_adicional,
	       cat.id, cat.nombre,
	       cl.id, cl.valor, cl.clave_nombre, cl.codigo_origen, cl.rut_proveedor, cl.cod_admin_id
	FROM productos p
	LEFT JOIN LATERAL (
		SELECT d.*
		FROM detalle_factura d
		JOIN facturas f2 ON f2.id = d.factura_id
		WHERE d.producto_id = p.id
		ORDER BY f2.fecha_emision DESC, d.creado_en DESC
		LIMIT 1
	) d ON TRUE
	LEFT JOIN facturas f ON f.id = d.factura_id
	LEFT JOIN codigos_admin_maestro ca ON ca.id = p.cod_admin_id
	LEFT JOIN categorias cat ON cat.id = p.categoria_id
	LEFT JOIN codigos_lectura cl ON cl.id = p.cod_lec_id`

// buildProductWhere arma el WHERE del listado; los filtros vacíos no aplican.
func buildProductWhere(f repository.ProductFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Name != "" {
		add("p.nombre ILIKE $%d", "%"+f.Name+"%")
	}
	if f.Code != "" {
		add("p.codigo ILIKE $%d", "%"+f.Code+"%")
	}
	if f.Folio != "" {
		add("f.folio ILIKE $%d", "%"+f.Folio+"%")
	}
	if f.AdminCodeID != "" {
		add("p.cod_admin_id = $%d", f.AdminCodeID)
	}
	if f.CategoryID != "" {
		add("p.categoria_id = $%d", f.CategoryID)
	}
	if f.BusinessID != "" {
		add("f.negocio_id = $%d", f.BusinessID)
	}
	if f.BusinessName != "" {
		add("f.negocio_id IN (SELECT id FROM nombre_negocio WHERE nombre ILIKE $%d)", "%"+f.BusinessName+"%")
	}
	if f.DateFrom != nil {
		add("f.fecha_emision >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("f.fecha_emision <= $%d", *f.DateTo)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListProducts devuelve una página de filas del reporte y el total filtrado.
func (r *ReportRepo) ListProducts(ctx context.Context, f repository.ProductFilter) ([]repository.ProductRow, int, error) {
	where, args := buildProductWhere(f)

	countQuery := `SELECT COUNT(*) FROM productos p
	LEFT JOIN LATERAL (
		SELECT d.factura_id
		FROM detalle_factura d
		JOIN facturas f2 ON f2.id = d.factura_id
		WHERE d.producto_id = p.id
		ORDER BY f2.fecha_emision DESC, d.creado_en DESC
		LIMIT 1
	) d ON TRUE
	LEFT JOIN facturas f ON f.id = d.factura_id` + where

	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("contar productos: %w", err)
	}

	query := productRowSelect + where + " ORDER BY f.fecha_emision DESC NULLS LAST, p.creado_en DESC"
	args = append(args, f.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductRow
	for rows.Next() {
		var row repository.ProductRow
		var (
			acID, acCode, acName, acFamily, acArea, acUnit *string
			acFactor, acPct                                *decimal.Decimal
			catID, catName                                 *string
			clID, clValue, clKey, clOrigin, clRUT          *string
			clAdminID                                      *string
		)
		// los campos del maestro son punteros: la fila entera puede venir
		// NULL (LEFT JOIN sin clasificación).
		if err := rows.Scan(
			&row.Product.ID, &row.Product.Name, &row.Product.Code, &row.Product.Unit,
			&row.Product.Quantity, &row.Product.SupplierID, &row.Product.CategoryID,
			&row.Product.AdminCodeID, &row.Product.ReadingCodeID, &row.Product.CreatedAt,
			&row.Folio, &row.IssueDate, &row.IsCredit,
			&row.UnitPrice, &row.Net, &row.VAT, &row.OtherTaxes, &row.Additional,
			&row.Misc, &row.TotalCost, &row.UnitCost,
			&acID, &acCode, &acName, &acFamily, &acArea, &acFactor, &acUnit, &acPct,
			&catID, &catName,
			&clID, &clValue, &clKey, &clOrigin, &clRUT, &clAdminID,
		); err != nil {
			return nil, 0, fmt.Errorf("escanear fila de producto: %w", err)
		}
		if acID != nil {
			row.AdminCode = &entity.AdminCode{
				ID:          *acID,
				Code:        deref(acCode),
				ProductName: deref(acName),
				Family:      deref(acFamily),
				Area:        deref(acArea),
				UMFactor:    derefDecimal(acFactor),
				UnitLabel:   deref(acUnit),
				Percentage:  derefDecimal(acPct),
			}
		}
		if catID != nil {
			row.Category = &entity.Category{ID: *catID, Name: deref(catName)}
		}
		if clID != nil {
			row.ReadingCod = &entity.ReadingCode{
				ID:          *clID,
				Value:       deref(clValue),
				NameKey:     deref(clKey),
				OriginCode:  deref(clOrigin),
				SupplierRUT: deref(clRUT),
				AdminCodeID: clAdminID,
			}
		}
		out = append(out, row)
	}
	return out, total, rows.Err()
}

// PriceHistory serie (mes, precio unitario neto, costo unitario) por fecha de
// emisión ascendente.
func (r *ReportRepo) PriceHistory(ctx context.Context, productID string) ([]repository.PricePoint, error) {
	query := `SELECT to_char(f.fecha_emision, 'YYYY-MM'),
	       CASE WHEN d.cantidad <> 0 THEN d.neto / d.cantidad ELSE 0 END,
	       d.costo_unitario
	FROM detalle_factura d
	JOIN facturas f ON f.id = d.factura_id
	WHERE d.producto_id = $1
	ORDER BY f.fecha_emision ASC, d.creado_en ASC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("historial de precios: %w", err)
	}
	defer rows.Close()

	var out []repository.PricePoint
	for rows.Next() {
		var p repository.PricePoint
		if err := rows.Scan(&p.Month, &p.NetUnitPrice, &p.UnitCost); err != nil {
			return nil, fmt.Errorf("escanear punto de precio: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MonthlyInvoiceTotals total facturado por mes.
func (r *ReportRepo) MonthlyInvoiceTotals(ctx context.Context) ([]repository.MonthlyTotal, error) {
	query := `SELECT to_char(fecha_emision, 'YYYY-MM') AS mes, SUM(monto_total)
	FROM facturas
	GROUP BY mes
	ORDER BY mes`
	return r.monthlyTotals(ctx, query)
}

// MonthlyAveragePrices costo unitario promedio por mes.
func (r *ReportRepo) MonthlyAveragePrices(ctx context.Context) ([]repository.MonthlyTotal, error) {
	query := `SELECT to_char(f.fecha_emision, 'YYYY-MM') AS mes, AVG(d.costo_unitario)
	FROM detalle_factura d
	JOIN facturas f ON f.id = d.factura_id
	GROUP BY mes
	ORDER BY mes`
	return r.monthlyTotals(ctx, query)
}

func (r *ReportRepo) monthlyTotals(ctx context.Context, query string) ([]repository.MonthlyTotal, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("totales mensuales: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlyTotal
	for rows.Next() {
		var t repository.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("escanear total mensual: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SupplierAverages costo unitario promedio por proveedor, mayores primero.
func (r *ReportRepo) SupplierAverages(ctx context.Context) ([]repository.SupplierAverage, error) {
	query := `SELECT p.nombre, AVG(d.costo_unitario)
	FROM detalle_factura d
	JOIN facturas f ON f.id = d.factura_id
	JOIN proveedores p ON p.id = f.proveedor_id
	GROUP BY p.nombre
	ORDER BY AVG(d.costo_unitario) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("promedios por proveedor: %w", err)
	}
	defer rows.Close()

	var out []repository.SupplierAverage
	for rows.Next() {
		var s repository.SupplierAverage
		if err := rows.Scan(&s.Supplier, &s.Average); err != nil {
			return nil, fmt.Errorf("escanear promedio de proveedor: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
