package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/application/ingest"
)

// IngestHandler subida de XML DTE (protegido).
type IngestHandler struct {
	uc *ingest.UseCase
}

// NewIngestHandler construye el handler.
func NewIngestHandler(uc *ingest.UseCase) *IngestHandler {
	return &IngestHandler{uc: uc}
}

// UploadXML godoc
// @Summary      Subir XML de facturas DTE
// @Tags         facturas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo  formData  file  true  "XML con uno o más DTE"
// @Success      200  {object}  dto.IngestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facturas/subir-xml [post]
func (h *IngestHandler) UploadXML(c *fiber.Ctx) error {
	raw, err := xmlBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "se requiere el archivo XML (campo 'archivo') o el cuerpo crudo"})
	}
	out, err := h.uc.ProcessXML(c.UserContext(), raw)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// xmlBody acepta multipart (campo archivo o file) o el cuerpo crudo.
func xmlBody(c *fiber.Ctx) ([]byte, error) {
	for _, field := range []string{"archivo", "file"} {
		fh, err := c.FormFile(field)
		if err != nil {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, fiber.ErrBadRequest
	}
	return body, nil
}
