package usecase

import (
	"strings"

	"github.com/google/uuid"

	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/application/ingest"
	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

// BusinessUseCase gestión de negocios (nombre_negocio).
type BusinessUseCase struct {
	repo repository.BusinessRepository
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(repo repository.BusinessRepository) *BusinessUseCase {
	return &BusinessUseCase{repo: repo}
}

// List devuelve todos los negocios.
func (uc *BusinessUseCase) List() ([]dto.BusinessView, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.BusinessView, 0, len(list))
	for _, b := range list {
		out = append(out, toBusinessView(b))
	}
	return out, nil
}

// Create alta manual: reutiliza el resolutor de la ingesta para que la
// normalización del RUT y el backfill de campos sean los mismos en ambos
// caminos.
func (uc *BusinessUseCase) Create(in dto.CreateBusinessRequest) (*dto.BusinessView, error) {
	if strings.TrimSpace(in.Name) == "" && strings.TrimSpace(in.ReceiverRUT) == "" {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.ReceiverRUT) == "" {
		// Sin RUT receptor: alta directa, sin resolución ni backfill.
		b := &entity.Business{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(in.Name),
			LegalName: in.LegalName,
			Email:     in.Email,
			Address:   in.Address,
		}
		if err := uc.repo.Create(b); err != nil {
			return nil, err
		}
		view := toBusinessView(b)
		return &view, nil
	}
	b, err := ingest.ResolveBusiness(uc.repo, in.ReceiverRUT, in.LegalName, in.Name, in.Email, in.Address)
	if err != nil {
		return nil, err
	}
	view := toBusinessView(b)
	return &view, nil
}

func toBusinessView(b *entity.Business) dto.BusinessView {
	return dto.BusinessView{
		ID:          b.ID,
		Name:        b.Name,
		ReceiverRUT: b.ReceiverRUT,
		LegalName:   b.LegalName,
		Email:       b.Email,
		Address:     b.Address,
	}
}
