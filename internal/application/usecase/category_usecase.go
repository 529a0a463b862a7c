package usecase

import (
	"strings"

	"github.com/google/uuid"

	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

// CategoryUseCase CRUD simple de categorías y asignación a productos.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products}
}

// List devuelve todas las categorías.
func (uc *CategoryUseCase) List() ([]dto.CategoryView, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryView, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryView{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// Create da de alta una categoría.
func (uc *CategoryUseCase) Create(name string) (*dto.CategoryView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return &dto.CategoryView{ID: c.ID, Name: c.Name}, nil
}

// AssignToProduct vincula una categoría a un producto. No dispara recálculo:
// la categoría no participa en el costo.
func (uc *CategoryUseCase) AssignToProduct(productID, categoryID string) error {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	category, err := uc.repo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.products.SetCategory(productID, categoryID)
}
