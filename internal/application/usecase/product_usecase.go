package usecase

import (
	"context"
	"time"

	appcosting "github.com/factorg/factorg-api/internal/application/costing"
	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

// ProductUseCase listado filtrado, parche de campos editables e historial de
// precios de productos. El reporte lee la línea más reciente de cada producto
// con sus campos derivados.
type ProductUseCase struct {
	products repository.ProductRepository
	report   repository.ReportRepository
	costing  *appcosting.UseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, report repository.ReportRepository, costing *appcosting.UseCase) *ProductUseCase {
	return &ProductUseCase{products: products, report: report, costing: costing}
}

// buildFilter mapea los query params al filtro del repositorio, forzando el
// negocio cuando el usuario no es administrador.
func buildFilter(in dto.ProductFilterRequest, restrictBusinessID string) repository.ProductFilter {
	f := repository.ProductFilter{
		Name:         in.Name,
		Code:         in.Code,
		Folio:        in.Folio,
		AdminCodeID:  in.AdminCodeID,
		CategoryID:   in.CategoryID,
		BusinessID:   in.BusinessID,
		BusinessName: in.BusinessName,
		Limit:        in.Limit,
		Offset:       in.Offset,
	}
	if restrictBusinessID != "" {
		f.BusinessID = restrictBusinessID
		f.BusinessName = ""
	}
	if f.Limit <= 0 {
		f.Limit = 25
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if t, err := time.Parse("2006-01-02", in.DateFrom); err == nil {
		f.DateFrom = &t
	}
	if t, err := time.Parse("2006-01-02", in.DateTo); err == nil {
		f.DateTo = &t
	}
	return f
}

// List aplica los filtros y devuelve items + total. Si restrictBusinessID no
// es vacío (usuario no administrador), fuerza el filtro de negocio.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest, restrictBusinessID string) (*dto.ProductListResponse, error) {
	f := buildFilter(in, restrictBusinessID)
	rows, total, err := uc.report.ListProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductCostView, 0, len(rows))
	for i := range rows {
		items = append(items, toCostView(&rows[i]))
	}
	return &dto.ProductListResponse{Items: items, Total: total}, nil
}

// ExportRows devuelve las filas crudas del reporte para la exportación a
// planilla; el límite de página sube al tope para exportar el filtro completo.
func (uc *ProductUseCase) ExportRows(ctx context.Context, in dto.ProductFilterRequest, restrictBusinessID string) ([]repository.ProductRow, error) {
	in.Offset = 0
	f := buildFilter(in, restrictBusinessID)
	f.Limit = 10000
	rows, _, err := uc.report.ListProducts(ctx, f)
	return rows, err
}

// Patch aplica un parche de campos editables (lista blanca explícita). Si el
// parche cambia el cod_admin, delega en el motor de propagación para que la
// cascada y el recálculo ocurran juntos.
func (uc *ProductUseCase) Patch(ctx context.Context, productID string, in dto.ProductPatchRequest) (*dto.PropagationResponse, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Code != nil {
		product.Code = in.Code
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}

	adminChanged := in.AdminCodeID != nil &&
		(product.AdminCodeID == nil || *product.AdminCodeID != *in.AdminCodeID)
	if adminChanged {
		return uc.costing.AssignAdminCodeToProduct(ctx, productID, *in.AdminCodeID)
	}
	return &dto.PropagationResponse{AffectedIDs: []string{}}, nil
}

// PriceHistory serie mensual (precio unitario neto, costo unitario) por fecha
// de emisión ascendente.
func (uc *ProductUseCase) PriceHistory(ctx context.Context, productID string) ([]dto.PricePointView, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	points, err := uc.report.PriceHistory(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PricePointView, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PricePointView{
			Month:        p.Month,
			NetUnitPrice: p.NetUnitPrice,
			UnitCost:     p.UnitCost,
		})
	}
	return out, nil
}

// toCostView mapea una fila del reporte a la vista del panel.
func toCostView(row *repository.ProductRow) dto.ProductCostView {
	v := dto.ProductCostView{
		ID:           row.Product.ID,
		Name:         row.Product.Name,
		Code:         row.Product.Code,
		Unit:         row.Product.Unit,
		Quantity:     row.Product.Quantity,
		SupplierID:   row.Product.SupplierID,
		CategoryID:   row.Product.CategoryID,
		AdminCodeID:  row.Product.AdminCodeID,
		Folio:        row.Folio,
		IsCreditNote: row.IsCredit,
		UnitPrice:    row.UnitPrice,
		VAT:          row.VAT,
		OtherTaxes:   row.OtherTaxes,
		Net:          row.Net,
		Additional:   row.Additional,
		Misc:         row.Misc,
		TotalCost:    row.TotalCost,
		UnitCost:     row.UnitCost,
	}
	if row.IssueDate != nil {
		v.IssueDate = row.IssueDate.Format("2006-01-02")
	}
	if row.AdminCode != nil {
		v.Percentage = row.AdminCode.Percentage
		v.AdminCode = &dto.AdminCodeView{
			ID:          row.AdminCode.ID,
			CodAdmin:    row.AdminCode.Code,
			ProductName: row.AdminCode.ProductName,
			Family:      row.AdminCode.Family,
			Area:        row.AdminCode.Area,
			UMFactor:    row.AdminCode.UMFactor,
			UnitLabel:   row.AdminCode.UnitLabel,
			Percentage:  row.AdminCode.Percentage,
		}
	}
	if row.Category != nil {
		v.Category = &dto.CategoryView{ID: row.Category.ID, Name: row.Category.Name}
	}
	if row.ReadingCod != nil {
		v.ReadingCode = &dto.ReadingCodeView{
			ID:          row.ReadingCod.ID,
			Value:       row.ReadingCod.Value,
			NameKey:     row.ReadingCod.NameKey,
			OriginCode:  row.ReadingCod.OriginCode,
			SupplierRUT: row.ReadingCod.SupplierRUT,
		}
	}
	return v
}
