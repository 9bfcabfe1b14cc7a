package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-scan-api/internal/application/dto"
	"github.com/jhoicas/Bodega-scan-api/internal/application/scan"
	"github.com/jhoicas/Bodega-scan-api/internal/application/tracking"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/entity"
)

// TrackingHandler panel de códigos de rastreo (protegido).
type TrackingHandler struct {
	uc *tracking.UseCase
}

// NewTrackingHandler construye el handler.
func NewTrackingHandler(uc *tracking.UseCase) *TrackingHandler {
	return &TrackingHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar un código de rastreo manualmente
// @Description  Mismo camino que el fallback del escaneo, con vínculo opcional a productos o a un movimiento.
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTrackingRequest  true  "Código y vínculos opcionales"
// @Success      201   {object}  dto.TrackingCodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/tracking [post]
func (h *TrackingHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTrackingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	userID, userName := actorFromCtx(c)

	products := make([]entity.TrackingProductRef, 0, len(in.Products))
	for _, p := range in.Products {
		products = append(products, entity.TrackingProductRef{
			SKU:        p.SKU,
			Name:       p.Name,
			Quantity:   p.Quantity,
			ScannedSKU: p.ScannedSKU,
		})
	}

	record, err := h.uc.RecordFallback(c.Context(), tracking.RecordInput{
		Code:            in.Code,
		Actor:           scan.Actor{UserID: userID, UserName: userName},
		Products:        products,
		StockMovementID: in.StockMovementID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnrecognizedCode) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNRECOGNIZED_CODE", Message: err.Error()})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTrackingCodeResponse(record))
}

// List godoc
// @Summary      Listar códigos de rastreo del usuario autenticado
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.TrackingCodeResponse
// @Router       /api/tracking [get]
func (h *TrackingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByUser(c.Context(), GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTrackingCodeResponses(list))
}

// Search godoc
// @Summary      Buscar códigos de rastreo por prefijo
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        prefix  query  string  true   "Prefijo del código (se normaliza a mayúsculas)"
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "Máximo de resultados"
// @Success      200  {array}  dto.TrackingCodeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tracking/search [get]
func (h *TrackingHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchTrackingRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	var from, to *time.Time
	if in.From != "" {
		t, err := time.Parse(time.RFC3339, in.From)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
		}
		from = &t
	}
	if in.To != "" {
		t, err := time.Parse(time.RFC3339, in.To)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
		}
		to = &t
	}

	list, err := h.uc.Search(c.Context(), in.Prefix, from, to, in.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTrackingCodeResponses(list))
}

// GetByID godoc
// @Summary      Obtener un código de rastreo por ID
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del código"
// @Success      200  {object}  dto.TrackingCodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tracking/{id} [get]
func (h *TrackingHandler) GetByID(c *fiber.Ctx) error {
	record, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if record == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.ToTrackingCodeResponse(record))
}

// Delete godoc
// @Summary      Eliminar un código de rastreo
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del código"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tracking/{id} [delete]
func (h *TrackingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
