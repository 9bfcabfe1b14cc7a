package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-scan-api/internal/application/dto"
	"github.com/jhoicas/Bodega-scan-api/internal/application/scan"
	"github.com/jhoicas/Bodega-scan-api/internal/application/tracking"
	"github.com/jhoicas/Bodega-scan-api/internal/domain"
	"github.com/jhoicas/Bodega-scan-api/pkg/logger"
)

// ScanHandler maneja los envíos del escáner (protegido). Orquesta el camino
// completo de un escaneo: descuento de stock y, si el código no resuelve a
// ningún producto, el fallback de código de rastreo.
type ScanHandler struct {
	engine   *scan.Engine
	resolver *scan.Resolver
	tracking *tracking.UseCase
	log      *logger.Logger
}

// NewScanHandler construye el handler.
func NewScanHandler(engine *scan.Engine, resolver *scan.Resolver, trackingUC *tracking.UseCase, log *logger.Logger) *ScanHandler {
	return &ScanHandler{engine: engine, resolver: resolver, tracking: trackingUC, log: log}
}

// StockOut godoc
// @Summary      Escanear código y descontar stock
// @Description  Resuelve el código (SKU directo o alias de kit) y descuenta la cantidad efectiva. Si el código no es un producto pero tiene formato de número de rastreo, lo registra como tracking.
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "Código escaneado y cantidad"
// @Success      201   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) StockOut(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	userID, userName := actorFromCtx(c)
	actor := scan.Actor{UserID: userID, UserName: userName}

	result, err := h.engine.StockOut(c.Context(), scan.StockInput{Code: in.Code, Quantity: in.Quantity, Actor: actor})
	if err == nil {
		return c.Status(fiber.StatusCreated).JSON(dto.ScanResponse{
			Kind:         "stock_out",
			Product:      dto.ToProductResponse(result.Product),
			Kit:          dto.ToKitAliasDTO(result.Kit),
			ScannedSKU:   result.ScannedSKU,
			EffectiveQty: result.EffectiveQty,
			Movement:     dto.ToMovementResponse(result.Movement),
		})
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		return respondError(c, err)
	}

	// Fallback: el código no es un producto. Si tiene formato de número de
	// rastreo se registra como tracking; si tampoco, gana el not-found original.
	record, fbErr := h.tracking.RecordFallback(c.Context(), tracking.RecordInput{Code: in.Code, Actor: actor})
	if fbErr != nil {
		if errors.Is(fbErr, domain.ErrUnrecognizedCode) || errors.Is(fbErr, domain.ErrEmptyCode) {
			return respondError(c, domain.ErrProductNotFound)
		}
		h.log.Error().Err(fbErr).Str("code", in.Code).Msg("fallback de rastreo falló")
		return respondError(c, fbErr)
	}
	h.log.Info().Str("code", record.CodeNormalized).Str("user_id", userID).Msg("código registrado como rastreo")
	return c.Status(fiber.StatusCreated).JSON(dto.ScanResponse{
		Kind:     "tracking",
		Tracking: dto.ToTrackingCodeResponse(record),
	})
}

// StockIn godoc
// @Summary      Escanear código y reponer stock
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "Código escaneado y cantidad"
// @Success      201   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/scan/in [post]
func (h *ScanHandler) StockIn(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	userID, userName := actorFromCtx(c)

	result, err := h.engine.StockIn(c.Context(), scan.StockInput{
		Code:     in.Code,
		Quantity: in.Quantity,
		Actor:    scan.Actor{UserID: userID, UserName: userName},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ScanResponse{
		Kind:         "stock_in",
		Product:      dto.ToProductResponse(result.Product),
		Kit:          dto.ToKitAliasDTO(result.Kit),
		ScannedSKU:   result.ScannedSKU,
		EffectiveQty: result.EffectiveQty,
		Movement:     dto.ToMovementResponse(result.Movement),
	})
}

// Resolve godoc
// @Summary      Resolver un código sin tocar stock
// @Description  Vista previa para la UI del escáner: a qué producto mapea el código y con qué multiplicador.
// @Tags         scan
// @Security     Bearer
// @Produce      json
// @Param        code  query  string  true  "Código a resolver"
// @Success      200   {object}  dto.ResolveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/scan/resolve [get]
func (h *ScanHandler) Resolve(c *fiber.Ctx) error {
	res, err := h.resolver.Resolve(c.Context(), c.Query("code"))
	if err != nil {
		return respondError(c, err)
	}
	if res == nil {
		return respondError(c, domain.ErrProductNotFound)
	}
	multiplier := int64(1)
	if res.Kit != nil {
		multiplier = res.Kit.Multiplier
	}
	return c.JSON(dto.ResolveResponse{
		Product:    dto.ToProductResponse(res.Product),
		Kit:        dto.ToKitAliasDTO(res.Kit),
		Multiplier: multiplier,
	})
}
