package repository

import (
	"github.com/shopspring/decimal"

	"github.com/factorg/factorg-api/internal/domain/entity"
)

// AdminCodeRepository puerto de persistencia para el maestro de códigos admin.
type AdminCodeRepository interface {
	GetByID(id string) (*entity.AdminCode, error)
	List() ([]*entity.AdminCode, error)
	Create(ac *entity.AdminCode) error
	Update(ac *entity.AdminCode) error
	// UpdatePercentage persiste el porcentaje ya normalizado a fracción [0,1].
	UpdatePercentage(id string, pct decimal.Decimal) error
}
