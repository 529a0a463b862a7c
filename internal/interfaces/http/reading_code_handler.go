package http

import (
	"github.com/gofiber/fiber/v2"

	appcosting "github.com/factorg/factorg-api/internal/application/costing"
	"github.com/factorg/factorg-api/internal/application/dto"
)

// ReadingCodeHandler asignación de cod_admin a nivel de huella (protegido).
type ReadingCodeHandler struct {
	costing *appcosting.UseCase
}

// NewReadingCodeHandler construye el handler.
func NewReadingCodeHandler(costing *appcosting.UseCase) *ReadingCodeHandler {
	return &ReadingCodeHandler{costing: costing}
}

// AssignAdminCode godoc
// @Summary      Asignar cod_admin a un código de lectura
// @Description  Clasifica de una vez todos los productos que comparten la
// @Description  huella y recalcula sus costos.
// @Tags         codigos-lectura
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        valor  path  string                      true  "Valor del código de lectura"
// @Param        body   body  dto.AdminCodeAssignRequest  true  "cod_admin_id"
// @Success      200    {object}  dto.PropagationResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/codigos-lectura/{valor}/asignar-cod-admin [put]
func (h *ReadingCodeHandler) AssignAdminCode(c *fiber.Ctx) error {
	value := c.Params("valor")
	var in dto.AdminCodeAssignRequest
	if err := c.BodyParser(&in); err != nil || in.AdminCodeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cod_admin_id es requerido"})
	}
	out, err := h.costing.AssignAdminCodeToReadingCode(c.UserContext(), value, in.AdminCodeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
