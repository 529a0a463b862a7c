// Package costing orquesta la propagación de clasificaciones y el recálculo
// de costos: cualquier edición de porcentaje, cod_admin o ajuste manual entra
// por aquí y sale con todas las líneas afectadas consistentes. La cascada es
// una operación nombrada que devuelve el conjunto de productos afectados.
package costing

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/domain"
	domaincosting "github.com/factorg/factorg-api/internal/domain/costing"
	"github.com/factorg/factorg-api/internal/domain/entity"
)

// UseCase motor de propagación y recálculo.
type UseCase struct {
	tx TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// UpdatePercentage actualiza el porcentaje adicional del cod_admin del
// producto (normalizado a fracción [0,1]) y recalcula todas las líneas de
// todos los productos vinculados a ese cod_admin. Exige clasificación previa:
// domain.ErrNoClassification si el producto no tiene cod_admin (es un paso de
// configuración pendiente, no un dato faltante).
func (uc *UseCase) UpdatePercentage(ctx context.Context, productID, rawPercentage string) (*dto.PropagationResponse, error) {
	pct, err := domaincosting.NormalizePercentage(rawPercentage)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.PropagationResponse
	err = uc.tx.Run(ctx, func(r Repos) error {
		product, err := r.Products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.AdminCodeID == nil {
			return domain.ErrNoClassification
		}
		if err := r.AdminCodes.UpdatePercentage(*product.AdminCodeID, pct); err != nil {
			return err
		}
		affected, err := uc.recomputeByAdminCode(r, *product.AdminCodeID)
		if err != nil {
			return err
		}
		view, err := uc.costView(r, product)
		if err != nil {
			return err
		}
		out = &dto.PropagationResponse{Product: view, AffectedIDs: affected}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AssignAdminCodeToProduct vincula un cod_admin al producto y lo propaga a
// todos los hermanos que comparten su código de lectura, recalculando las
// líneas de cada uno.
func (uc *UseCase) AssignAdminCodeToProduct(ctx context.Context, productID, adminCodeID string) (*dto.PropagationResponse, error) {
	var out *dto.PropagationResponse
	err := uc.tx.Run(ctx, func(r Repos) error {
		product, err := r.Products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		adminCode, err := r.AdminCodes.GetByID(adminCodeID)
		if err != nil {
			return err
		}
		if adminCode == nil {
			return domain.ErrNotFound
		}

		targets := []*entity.Product{product}
		if product.ReadingCodeID != nil {
			if err := r.ReadingCodes.SetAdminCode(*product.ReadingCodeID, &adminCodeID); err != nil {
				return err
			}
			siblings, err := r.Products.SiblingsByReadingCode(*product.ReadingCodeID)
			if err != nil {
				return err
			}
			targets = mergeTargets(product, siblings)
		}

		affected, err := uc.propagate(r, targets, adminCode)
		if err != nil {
			return err
		}
		product.AdminCodeID = &adminCodeID
		view, err := uc.costView(r, product)
		if err != nil {
			return err
		}
		out = &dto.PropagationResponse{Product: view, AffectedIDs: affected}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AssignAdminCodeToReadingCode vincula un cod_admin directamente a un código
// de lectura y lo propaga a todos los productos que lo referencian.
func (uc *UseCase) AssignAdminCodeToReadingCode(ctx context.Context, value, adminCodeID string) (*dto.PropagationResponse, error) {
	var out *dto.PropagationResponse
	err := uc.tx.Run(ctx, func(r Repos) error {
		rc, err := r.ReadingCodes.GetByValue(value)
		if err != nil {
			return err
		}
		if rc == nil {
			return domain.ErrNotFound
		}
		adminCode, err := r.AdminCodes.GetByID(adminCodeID)
		if err != nil {
			return err
		}
		if adminCode == nil {
			return domain.ErrNotFound
		}
		if err := r.ReadingCodes.SetAdminCode(rc.ID, &adminCodeID); err != nil {
			return err
		}
		siblings, err := r.Products.SiblingsByReadingCode(rc.ID)
		if err != nil {
			return err
		}
		affected, err := uc.propagate(r, siblings, adminCode)
		if err != nil {
			return err
		}
		out = &dto.PropagationResponse{AffectedIDs: affected}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMisc aplica el ajuste manual (otros) sobre la línea más reciente del
// producto y la recalcula. El ajuste conserva siempre su signo, también en
// notas de crédito.
func (uc *UseCase) UpdateMisc(ctx context.Context, productID string, misc int64) (*dto.PropagationResponse, error) {
	var out *dto.PropagationResponse
	err := uc.tx.Run(ctx, func(r Repos) error {
		product, err := r.Products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		line, err := r.Invoices.LatestLineByProduct(productID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		line.Misc = misc
		if err := uc.recomputeLine(r, product, line); err != nil {
			return err
		}
		view, err := uc.costView(r, product)
		if err != nil {
			return err
		}
		out = &dto.PropagationResponse{Product: view, AffectedIDs: []string{product.ID}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecalculateAdminCode recalcula todos los productos vinculados a un
// cod_admin. Lo usa la edición del maestro (cambio de porcentaje o factor UM).
func (uc *UseCase) RecalculateAdminCode(ctx context.Context, adminCodeID string) ([]string, error) {
	var affected []string
	err := uc.tx.Run(ctx, func(r Repos) error {
		ids, err := uc.recomputeByAdminCode(r, adminCodeID)
		if err != nil {
			return err
		}
		affected = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}

// propagate asigna el cod_admin a cada producto objetivo y recalcula sus
// líneas. Idempotente: un hermano ya consistente se reescribe sin efecto.
func (uc *UseCase) propagate(r Repos, targets []*entity.Product, adminCode *entity.AdminCode) ([]string, error) {
	affected := make([]string, 0, len(targets))
	for _, p := range targets {
		if err := r.Products.SetAdminCode(p.ID, &adminCode.ID); err != nil {
			return nil, err
		}
		p.AdminCodeID = &adminCode.ID
		if err := uc.recomputeProductLines(r, p, adminCode); err != nil {
			return nil, err
		}
		affected = append(affected, p.ID)
	}
	sort.Strings(affected)
	return affected, nil
}

// recomputeByAdminCode recalcula las líneas de todos los productos vinculados
// directamente al cod_admin.
func (uc *UseCase) recomputeByAdminCode(r Repos, adminCodeID string) ([]string, error) {
	adminCode, err := r.AdminCodes.GetByID(adminCodeID)
	if err != nil {
		return nil, err
	}
	if adminCode == nil {
		return nil, domain.ErrNotFound
	}
	products, err := r.Products.ByAdminCode(adminCodeID)
	if err != nil {
		return nil, err
	}
	affected := make([]string, 0, len(products))
	for _, p := range products {
		if err := uc.recomputeProductLines(r, p, adminCode); err != nil {
			return nil, err
		}
		affected = append(affected, p.ID)
	}
	sort.Strings(affected)
	return affected, nil
}

// recomputeProductLines recalcula todas las líneas de un producto con el
// porcentaje y factor UM vigentes.
func (uc *UseCase) recomputeProductLines(r Repos, product *entity.Product, adminCode *entity.AdminCode) error {
	lines, err := r.Invoices.LinesByProduct(product.ID)
	if err != nil {
		return err
	}
	pct, um := classificationInputs(adminCode)
	for _, line := range lines {
		invoice, err := r.Invoices.InvoiceByLine(line.ID)
		if err != nil {
			return err
		}
		isCredit := invoice != nil && invoice.IsCreditNote
		applyLine(line, pct, um, isCredit)
		if err := r.Invoices.UpdateLine(line); err != nil {
			return err
		}
	}
	return nil
}

// recomputeLine recalcula una sola línea (edición de "otros").
func (uc *UseCase) recomputeLine(r Repos, product *entity.Product, line *entity.InvoiceLine) error {
	var adminCode *entity.AdminCode
	if product.AdminCodeID != nil {
		ac, err := r.AdminCodes.GetByID(*product.AdminCodeID)
		if err != nil {
			return err
		}
		adminCode = ac
	}
	invoice, err := r.Invoices.InvoiceByLine(line.ID)
	if err != nil {
		return err
	}
	pct, um := classificationInputs(adminCode)
	applyLine(line, pct, um, invoice != nil && invoice.IsCreditNote)
	return r.Invoices.UpdateLine(line)
}

// classificationInputs porcentaje y factor UM con defaults (0 y 1) cuando no
// hay clasificación o el factor no es utilizable.
func classificationInputs(adminCode *entity.AdminCode) (pct, um decimal.Decimal) {
	pct, um = decimal.Zero, decimal.NewFromInt(1)
	if adminCode != nil {
		pct = adminCode.Percentage
		if !adminCode.UMFactor.IsZero() {
			um = adminCode.UMFactor
		}
	}
	return pct, um
}

func applyLine(line *entity.InvoiceLine, pct, um decimal.Decimal, isCredit bool) {
	res := domaincosting.ComputeLine(domaincosting.LineInput{
		Quantity:     line.Quantity,
		UnitPrice:    line.UnitPrice,
		Percentage:   pct,
		UMFactor:     um,
		Misc:         line.Misc,
		IsCreditNote: isCredit,
	})
	line.Net = res.Net
	line.Additional = res.Additional
	line.TotalCost = res.TotalCost
	line.UnitCost = res.UnitCost
}

// mergeTargets garantiza que el producto editado esté en la lista aunque la
// consulta de hermanos no lo devuelva (cod_lec recién asignado).
func mergeTargets(product *entity.Product, siblings []*entity.Product) []*entity.Product {
	for _, s := range siblings {
		if s.ID == product.ID {
			return siblings
		}
	}
	return append(siblings, product)
}

// costView arma la vista de costos del producto con su línea más reciente.
func (uc *UseCase) costView(r Repos, product *entity.Product) (*dto.ProductCostView, error) {
	view := &dto.ProductCostView{
		ID:          product.ID,
		Name:        product.Name,
		Code:        product.Code,
		Unit:        product.Unit,
		Quantity:    product.Quantity,
		SupplierID:  product.SupplierID,
		CategoryID:  product.CategoryID,
		AdminCodeID: product.AdminCodeID,
	}
	if product.AdminCodeID != nil {
		adminCode, err := r.AdminCodes.GetByID(*product.AdminCodeID)
		if err != nil {
			return nil, err
		}
		if adminCode != nil {
			view.Percentage = adminCode.Percentage
			view.AdminCode = &dto.AdminCodeView{
				ID:          adminCode.ID,
				CodAdmin:    adminCode.Code,
				ProductName: adminCode.ProductName,
				Family:      adminCode.Family,
				Area:        adminCode.Area,
				UMFactor:    adminCode.UMFactor,
				UnitLabel:   adminCode.UnitLabel,
				Percentage:  adminCode.Percentage,
			}
		}
	}
	line, err := r.Invoices.LatestLineByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	if line != nil {
		invoice, err := r.Invoices.InvoiceByLine(line.ID)
		if err != nil {
			return nil, err
		}
		if invoice != nil {
			view.Folio = invoice.Folio
			view.IsCreditNote = invoice.IsCreditNote
			if !invoice.IssueDate.IsZero() {
				view.IssueDate = invoice.IssueDate.Format("2006-01-02")
			}
		}
		view.UnitPrice = line.UnitPrice
		view.VAT = line.VAT
		view.OtherTaxes = line.OtherTaxes
		view.Net = line.Net
		view.Additional = line.Additional
		view.Misc = line.Misc
		view.TotalCost = line.TotalCost
		view.UnitCost = line.UnitCost
	}
	return view, nil
}
