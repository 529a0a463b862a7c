package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcosting "github.com/factorg/factorg-api/internal/application/costing"
	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/domain"
	domaincosting "github.com/factorg/factorg-api/internal/domain/costing"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

// AdminCodeUseCase mantiene el maestro de códigos admin. Las ediciones de
// porcentaje o factor UM delegan la cascada de recálculo al motor de costos.
type AdminCodeUseCase struct {
	repo    repository.AdminCodeRepository
	costing *appcosting.UseCase
}

// NewAdminCodeUseCase construye el caso de uso.
func NewAdminCodeUseCase(repo repository.AdminCodeRepository, costing *appcosting.UseCase) *AdminCodeUseCase {
	return &AdminCodeUseCase{repo: repo, costing: costing}
}

// List devuelve el maestro completo.
func (uc *AdminCodeUseCase) List() ([]dto.AdminCodeView, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdminCodeView, 0, len(list))
	for _, ac := range list {
		out = append(out, toAdminCodeView(ac))
	}
	return out, nil
}

// Create da de alta un código admin. El porcentaje se normaliza a fracción.
func (uc *AdminCodeUseCase) Create(in dto.CreateAdminCodeRequest) (*dto.AdminCodeView, error) {
	if strings.TrimSpace(in.Code) == "" {
		return nil, domain.ErrInvalidInput
	}
	pct, err := parseRawPercentage(in.Percentage)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	um := decimal.NewFromInt(1)
	if len(in.UMFactor) > 0 {
		if um, err = parseRawDecimal(in.UMFactor); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	ac := &entity.AdminCode{
		ID:          uuid.New().String(),
		Code:        strings.TrimSpace(in.Code),
		ProductName: in.ProductName,
		Family:      in.Family,
		Area:        in.Area,
		UMFactor:    um,
		UnitLabel:   in.UnitLabel,
		Percentage:  pct,
	}
	if err := uc.repo.Create(ac); err != nil {
		return nil, err
	}
	view := toAdminCodeView(ac)
	return &view, nil
}

// Update edita el maestro. Si cambia el porcentaje o el factor UM, recalcula
// en cascada todos los productos vinculados y devuelve sus IDs.
func (uc *AdminCodeUseCase) Update(ctx context.Context, id string, in dto.UpdateAdminCodeRequest) (*dto.AdminCodeUpdateResponse, error) {
	ac, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ac == nil {
		return nil, domain.ErrNotFound
	}

	needsCascade := false
	if in.ProductName != nil {
		ac.ProductName = *in.ProductName
	}
	if in.Family != nil {
		ac.Family = *in.Family
	}
	if in.Area != nil {
		ac.Area = *in.Area
	}
	if in.UnitLabel != nil {
		ac.UnitLabel = *in.UnitLabel
	}
	if len(in.UMFactor) > 0 {
		um, err := parseRawDecimal(in.UMFactor)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		ac.UMFactor = um
		needsCascade = true
	}
	if len(in.Percentage) > 0 {
		pct, err := parseRawPercentage(in.Percentage)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		ac.Percentage = pct
		needsCascade = true
	}
	if err := uc.repo.Update(ac); err != nil {
		return nil, err
	}

	out := &dto.AdminCodeUpdateResponse{AdminCode: toAdminCodeView(ac), AffectedIDs: []string{}}
	if needsCascade {
		affected, err := uc.costing.RecalculateAdminCode(ctx, ac.ID)
		if err != nil {
			return nil, err
		}
		out.AffectedIDs = affected
	}
	return out, nil
}

// parseRawPercentage acepta número JSON o string ("10%", "10,5") y normaliza.
func parseRawPercentage(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 {
		return decimal.Zero, nil
	}
	return domaincosting.NormalizePercentage(trimJSONString(raw))
}

func parseRawDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(trimJSONString(raw), ",", "."))
}

// trimJSONString quita comillas de un valor JSON crudo (número o string).
func trimJSONString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	var str string
	if json.Unmarshal(raw, &str) == nil {
		return str
	}
	return s
}

func toAdminCodeView(ac *entity.AdminCode) dto.AdminCodeView {
	return dto.AdminCodeView{
		ID:          ac.ID,
		CodAdmin:    ac.Code,
		ProductName: ac.ProductName,
		Family:      ac.Family,
		Area:        ac.Area,
		UMFactor:    ac.UMFactor,
		UnitLabel:   ac.UnitLabel,
		Percentage:  ac.Percentage,
	}
}
