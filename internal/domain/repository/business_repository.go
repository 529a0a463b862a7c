package repository

import "github.com/factorg/factorg-api/internal/domain/entity"

// BusinessRepository puerto de persistencia para negocios (nombre_negocio).
type BusinessRepository interface {
	GetByID(id string) (*entity.Business, error)
	GetByReceiverRUT(rut string) (*entity.Business, error)
	List() ([]*entity.Business, error)
	Create(b *entity.Business) error
	Update(b *entity.Business) error
}
