package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/application/usecase"
)

// SupplierHandler consultas de proveedores (protegido).
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// List godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierView
// @Router       /api/proveedores [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByRUT godoc
// @Summary      Buscar proveedor por RUT
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        rut  path  string  true  "RUT del proveedor"
// @Success      200  {object}  dto.SupplierView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{rut} [get]
func (h *SupplierHandler) GetByRUT(c *fiber.Ctx) error {
	out, err := h.uc.GetByRUT(c.Params("rut"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
	}
	return c.JSON(out)
}
