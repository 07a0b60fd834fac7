package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/usecase"
)

// LedgerHandler expone el libro de lotes y el historial de movimientos.
type LedgerHandler struct {
	uc *usecase.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Snapshot devuelve el libro completo de un depósito agrupado por producto,
// con los lotes de cada producto en orden FEFO.
// GET /api/depots/:id/ledger
func (h *LedgerHandler) Snapshot(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Snapshot(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements lista el historial de movimientos, filtrable por depósito y producto.
// GET /api/movements?depot_id=&product_id=
func (h *LedgerHandler) Movements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.Movements(c.Query("depot_id"), c.Query("product_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
