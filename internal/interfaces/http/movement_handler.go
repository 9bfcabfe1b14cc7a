package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-scan-api/internal/application/dto"
	"github.com/jhoicas/Bodega-scan-api/internal/application/ledger"
	"github.com/jhoicas/Bodega-scan-api/internal/domain/repository"
)

// MovementHandler lectura y borrado del ledger de movimientos (protegido).
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List godoc
// @Summary      Listar movimientos de stock
// @Description  Página del ledger ordenada por timestamp descendente. Usar next_cursor para la página siguiente.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        sku          query  string  false  "Filtrar por SKU del producto padre"
// @Param        scanned_sku  query  string  false  "Filtrar por código escaneado"
// @Param        user_id      query  string  false  "Filtrar por usuario"
// @Param        type         query  string  false  "out | in"
// @Param        from         query  string  false  "RFC3339"
// @Param        to           query  string  false  "RFC3339"
// @Param        limit        query  int     false  "Tamaño de página (máx 200)"
// @Param        cursor       query  string  false  "Cursor opaco de la página anterior"
// @Success      200  {object}  dto.MovementPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	filter, err := movementFilter(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}

	page, err := h.uc.List(c.Context(), filter, in.Limit, in.Cursor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementPageResponse{
		Movements:  dto.ToMovementResponses(page.Movements),
		NextCursor: page.NextCursor,
	})
}

// Export godoc
// @Summary      Exportar movimientos de stock
// @Description  Devuelve los movimientos que pasan el filtro, paginando internamente hasta el tope configurado.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        sku          query  string  false  "Filtrar por SKU del producto padre"
// @Param        scanned_sku  query  string  false  "Filtrar por código escaneado"
// @Param        user_id      query  string  false  "Filtrar por usuario"
// @Param        type         query  string  false  "out | in"
// @Param        from         query  string  false  "RFC3339"
// @Param        to           query  string  false  "RFC3339"
// @Success      200  {object}  dto.MovementExportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/export [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	filter, err := movementFilter(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}

	export, err := h.uc.ExportAll(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	movements := dto.ToMovementResponses(export.Movements)
	return c.JSON(dto.MovementExportResponse{
		Movements: movements,
		Total:     len(movements),
		Truncated: export.Truncated,
	})
}

// Delete godoc
// @Summary      Eliminar un movimiento (corrección manual)
// @Description  Elimina la entrada del ledger y revierte su efecto sobre el stock del producto, si aún existe.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// movementFilter convierte los query params al filtro del repositorio.
func movementFilter(in dto.ListMovementsRequest) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		SKU:        in.SKU,
		ScannedSKU: in.ScannedSKU,
		UserID:     in.UserID,
		Type:       in.Type,
	}
	if in.From != "" {
		t, err := time.Parse(time.RFC3339, in.From)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if in.To != "" {
		t, err := time.Parse(time.RFC3339, in.To)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	return filter, nil
}
