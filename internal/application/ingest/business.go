package ingest

import (
	"github.com/google/uuid"

	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/normalize"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

// ResolveBusiness resuelve el RUT del receptor a un negocio. Si no existe lo
// crea con el mejor nombre disponible (razón social, luego el hint del
// llamador, luego el RUT). En registros existentes rellena correo y dirección
// vacíos sin pisar los ya poblados.
func ResolveBusiness(repo repository.BusinessRepository, receiverRUT, legalName, nameHint, email, address string) (*entity.Business, error) {
	rut := normalize.RUT(receiverRUT)
	existing, err := repo.GetByReceiverRUT(rut)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		changed := false
		if existing.Email == "" && email != "" {
			existing.Email = email
			changed = true
		}
		if existing.Address == "" && address != "" {
			existing.Address = address
			changed = true
		}
		if existing.LegalName == "" && legalName != "" {
			existing.LegalName = legalName
			changed = true
		}
		if changed {
			if err := repo.Update(existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	name := legalName
	if name == "" {
		name = nameHint
	}
	if name == "" {
		name = rut
	}
	b := &entity.Business{
		ID:          uuid.New().String(),
		Name:        name,
		ReceiverRUT: &rut,
		LegalName:   legalName,
		Email:       email,
		Address:     address,
	}
	if err := repo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}
