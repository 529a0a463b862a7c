package repository

import "github.com/factorg/factorg-api/internal/domain/entity"

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	// GetByRUT busca por RUT normalizado (la comparación ignora puntos y mayúsculas).
	GetByRUT(rut string) (*entity.Supplier, error)
	Create(s *entity.Supplier) error
	List() ([]*entity.Supplier, error)
}
