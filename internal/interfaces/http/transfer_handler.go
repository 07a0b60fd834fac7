package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/transfer"
	"github.com/jhoicas/distribucion-api/internal/domain/ledger"
)

// TransferHandler maneja el ciclo de vida de los traslados (protegido).
type TransferHandler struct {
	uc      *transfer.UseCase
	guideUC *transfer.GuideUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase, guideUC *transfer.GuideUseCase) *TransferHandler {
	return &TransferHandler{uc: uc, guideUC: guideUC}
}

// Create despacha un traslado desde el depósito primario (consume FEFO).
// POST /api/transfers
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receive marca el traslado como recibido en destino.
// POST /api/transfers/:id/receive
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	out, err := h.uc.Receive(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Distribute reparte los lotes recibidos entre depósitos secundarios y venta directa.
// POST /api/transfers/:id/distribute
func (h *TransferHandler) Distribute(c *fiber.Ctx) error {
	var in dto.DistributeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Allocation) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "allocation es requerido"})
	}
	out, err := h.uc.Distribute(c.Context(), GetUserID(c), c.Params("id"), ledger.Allocation(in.Allocation))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un traslado.
// GET /api/transfers/:id
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista traslados, filtrable por estado.
// GET /api/transfers?status=
func (h *TransferHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Guide devuelve la guía de distribución en PDF de un traslado distribuido.
// GET /api/transfers/:id/guide
func (h *TransferHandler) Guide(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.guideUC.Generate(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="guia-%s.pdf"`, id))
	return c.Send(pdfBytes)
}
