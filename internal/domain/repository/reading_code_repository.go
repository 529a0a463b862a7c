package repository

import "github.com/factorg/factorg-api/internal/domain/entity"

// ReadingCodeRepository puerto de persistencia para códigos de lectura.
type ReadingCodeRepository interface {
	GetByValue(value string) (*entity.ReadingCode, error)
	// Create devuelve domain.ErrDuplicate si Value ya existe (carrera de
	// inserción concurrente) sin invalidar la transacción en curso; el
	// resolutor relee y reintenta con sufijo.
	Create(rc *entity.ReadingCode) error
	SetAdminCode(id string, adminCodeID *string) error
}
