package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribucion-api/internal/application/adjustment"
	"github.com/jhoicas/distribucion-api/internal/application/dto"
)

// AdjustmentHandler maneja los ajustes de inventario (protegido).
// Aprobar y rechazar requieren rol master.
type AdjustmentHandler struct {
	uc *adjustment.UseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *adjustment.UseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create registra un ajuste. Los negativos descuentan de inmediato; los
// positivos quedan pendientes de aprobación.
// POST /api/adjustments
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), GetUserName(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve aprueba un ajuste positivo pendiente e ingresa el stock en un lote
// sintético.
// POST /api/adjustments/:id/approve
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject rechaza un ajuste positivo pendiente con un motivo obligatorio.
// POST /api/adjustments/:id/reject
func (h *AdjustmentHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Reject(c.Context(), GetUserID(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un ajuste.
// GET /api/adjustments/:id
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista ajustes, filtrable por estado.
// GET /api/adjustments?status=
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
