package usecase

import (
	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/domain/normalize"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

// SupplierUseCase consultas de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// List devuelve todos los proveedores.
func (uc *SupplierUseCase) List() ([]dto.SupplierView, error) {
	suppliers, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierView, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.SupplierView{
			ID:      s.ID,
			RUT:     s.RUT,
			Name:    s.Name,
			Email:   s.Email,
			Address: s.Address,
		})
	}
	return out, nil
}

// GetByRUT busca un proveedor por RUT (se normaliza antes de buscar).
func (uc *SupplierUseCase) GetByRUT(rut string) (*dto.SupplierView, error) {
	s, err := uc.repo.GetByRUT(normalize.RUT(rut))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return &dto.SupplierView{
		ID:      s.ID,
		RUT:     s.RUT,
		Name:    s.Name,
		Email:   s.Email,
		Address: s.Address,
	}, nil
}
