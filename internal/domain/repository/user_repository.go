package repository

import "github.com/factorg/factorg-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios del panel.
type UserRepository interface {
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
	List() ([]*entity.User, error)
	Create(u *entity.User) error
	Update(u *entity.User) error
}
