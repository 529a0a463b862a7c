package usecase

import (
	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/normalize"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

// InvoiceUseCase consultas y mantenimiento de facturas. La creación ocurre
// solo vía ingesta de XML; aquí se listan, se asigna negocio y se eliminan.
type InvoiceUseCase struct {
	repo       repository.InvoiceRepository
	businesses repository.BusinessRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository, businesses repository.BusinessRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, businesses: businesses}
}

// List facturas ordenadas por fecha de emisión descendente.
func (uc *InvoiceUseCase) List() ([]dto.InvoiceView, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	return toInvoiceViews(list), nil
}

// GetByID una factura.
func (uc *InvoiceUseCase) GetByID(id string) (*dto.InvoiceView, error) {
	inv, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	v := toInvoiceView(inv)
	return &v, nil
}

// SearchBySupplierRUT busca por RUT del proveedor (insensible a puntuación).
func (uc *InvoiceUseCase) SearchBySupplierRUT(rut string) ([]dto.InvoiceView, error) {
	list, err := uc.repo.SearchBySupplierRUT(normalize.RUT(rut))
	if err != nil {
		return nil, err
	}
	return toInvoiceViews(list), nil
}

// AssignBusiness asigna un negocio a la factura (visibilidad de reportes).
func (uc *InvoiceUseCase) AssignBusiness(invoiceID, businessID string) (*dto.InvoiceView, error) {
	inv, err := uc.repo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.businesses.GetByID(businessID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.AssignBusiness(invoiceID, businessID); err != nil {
		return nil, err
	}
	inv.BusinessID = &businessID
	v := toInvoiceView(inv)
	return &v, nil
}

// Delete elimina la factura; la base cascadea sus líneas.
func (uc *InvoiceUseCase) Delete(id string) error {
	inv, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toInvoiceView(inv *entity.Invoice) dto.InvoiceView {
	v := dto.InvoiceView{
		ID:           inv.ID,
		Folio:        inv.Folio,
		SupplierID:   inv.SupplierID,
		PaymentTerms: inv.PaymentTerms,
		Total:        inv.Total,
		IsCreditNote: inv.IsCreditNote,
		BusinessID:   inv.BusinessID,
	}
	if !inv.IssueDate.IsZero() {
		v.IssueDate = inv.IssueDate.Format("2006-01-02")
	}
	return v
}

func toInvoiceViews(list []*entity.Invoice) []dto.InvoiceView {
	out := make([]dto.InvoiceView, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceView(inv))
	}
	return out
}
