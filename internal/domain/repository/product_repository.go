package repository

import "github.com/factorg/factorg-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// Cada línea de factura crea una fila nueva (snapshot histórico); la
// deduplicación real la hace el código de lectura.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(p *entity.Product) error
	// SiblingsByReadingCode productos que comparten la misma huella (cod_lec).
	SiblingsByReadingCode(readingCodeID string) ([]*entity.Product, error)
	// LatestClassifiedByCodeAndSupplier: producto más reciente del mismo
	// código y proveedor que ya tenga cod_admin (herencia en la ingesta).
	LatestClassifiedByCodeAndSupplier(code, supplierID string) (*entity.Product, error)
	SetAdminCode(productID string, adminCodeID *string) error
	SetCategory(productID, categoryID string) error
	// ByAdminCode productos vinculados directamente a un cod_admin (cascada
	// al editar el maestro).
	ByAdminCode(adminCodeID string) ([]*entity.Product, error)
}
