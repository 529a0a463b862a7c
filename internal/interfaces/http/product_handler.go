package http

import (
	"github.com/gofiber/fiber/v2"

	appcosting "github.com/factorg/factorg-api/internal/application/costing"
	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/application/usecase"
	"github.com/factorg/factorg-api/internal/infrastructure/excel"
)

// ProductHandler listado, edición y recálculo de productos (protegido).
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	costing *appcosting.UseCase
	catUC   *usecase.CategoryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, costing *appcosting.UseCase, catUC *usecase.CategoryUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, costing: costing, catUC: catUC}
}

// List godoc
// @Summary      Listar productos con su última línea y costos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        nombre        query  string  false  "Filtro por nombre (parcial)"
// @Param        codigo        query  string  false  "Filtro por código"
// @Param        folio         query  string  false  "Filtro por folio (substring)"
// @Param        cod_admin_id  query  string  false  "Filtro por cod_admin"
// @Param        categoria_id  query  string  false  "Filtro por categoría"
// @Param        negocio_id    query  string  false  "Filtro por negocio"
// @Param        fecha_inicio  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        fecha_fin     query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), in, RestrictBusinessID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar el listado filtrado a XLSX
// @Tags         productos
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router       /api/productos/exportar [get]
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	var in dto.ProductFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	rows, err := h.uc.ExportRows(c.UserContext(), in, RestrictBusinessID(c))
	if err != nil {
		return respondError(c, err)
	}
	book, err := excel.ExportProducts(rows)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="productos.xlsx"`)
	return c.Send(book)
}

// Patch godoc
// @Summary      Editar campos del producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.ProductPatchRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PropagationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Patch(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ProductPatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Patch(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePercentage godoc
// @Summary      Cambiar el porcentaje adicional del producto
// @Description  El porcentaje vive en el cod_admin del producto; el cambio
// @Description  recalcula todas las líneas de todos los productos del grupo.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del producto"
// @Param        body  body  dto.PercentageUpdateRequest  true  "Porcentaje (número o texto)"
// @Success      200   {object}  dto.PropagationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/porcentaje-adicional [put]
func (h *ProductHandler) UpdatePercentage(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.PercentageUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.costing.UpdatePercentage(c.UserContext(), id, string(in.Percentage))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignAdminCode godoc
// @Summary      Asignar cod_admin al producto
// @Description  Propaga a todos los hermanos del mismo código de lectura y
// @Description  recalcula sus costos.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del producto"
// @Param        body  body  dto.AdminCodeAssignRequest  true  "cod_admin_id"
// @Success      200   {object}  dto.PropagationResponse
// @Router       /api/productos/{id}/asignar-cod-admin [put]
func (h *ProductHandler) AssignAdminCode(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AdminCodeAssignRequest
	if err := c.BodyParser(&in); err != nil || in.AdminCodeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cod_admin_id es requerido"})
	}
	out, err := h.costing.AssignAdminCodeToProduct(c.UserContext(), id, in.AdminCodeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateMisc godoc
// @Summary      Ajuste manual (otros) sobre la línea más reciente
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del producto"
// @Param        body  body  dto.MiscUpdateRequest  true  "otros"
// @Success      200   {object}  dto.PropagationResponse
// @Router       /api/productos/{id}/otros [put]
func (h *ProductHandler) UpdateMisc(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.MiscUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.costing.UpdateMisc(c.UserContext(), id, in.Misc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignCategory godoc
// @Summary      Asignar categoría al producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del producto"
// @Param        body  body  dto.CategoryAssignRequest  true  "categoria_id"
// @Success      204
// @Router       /api/productos/{id}/categoria [put]
func (h *ProductHandler) AssignCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.CategoryAssignRequest
	if err := c.BodyParser(&in); err != nil || in.CategoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoria_id es requerido"})
	}
	if err := h.catUC.AssignToProduct(id, in.CategoryID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PriceHistory godoc
// @Summary      Historial mensual de precios del producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.PricePointView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/historial-precios [get]
func (h *ProductHandler) PriceHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.PriceHistory(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
