package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/application/usecase"
)

// AdminCodeHandler maestro de códigos admin (protegido, solo administradores).
type AdminCodeHandler struct {
	uc *usecase.AdminCodeUseCase
}

// NewAdminCodeHandler construye el handler.
func NewAdminCodeHandler(uc *usecase.AdminCodeUseCase) *AdminCodeHandler {
	return &AdminCodeHandler{uc: uc}
}

// List godoc
// @Summary      Listar el maestro de códigos admin
// @Tags         codigos-admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AdminCodeView
// @Router       /api/codigos-admin [get]
func (h *AdminCodeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear entrada del maestro
// @Tags         codigos-admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdminCodeRequest  true  "Datos del cod_admin"
// @Success      201   {object}  dto.AdminCodeView
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/codigos-admin [post]
func (h *AdminCodeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdminCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" || in.ProductName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cod_admin y nombre_producto son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar entrada del maestro
// @Description  Cambiar el porcentaje o el factor UM recalcula en cascada
// @Description  todos los productos vinculados al cod_admin.
// @Tags         codigos-admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del cod_admin"
// @Param        body  body  dto.UpdateAdminCodeRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AdminCodeUpdateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/codigos-admin/{id} [put]
func (h *AdminCodeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAdminCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
