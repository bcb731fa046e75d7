package http

import (
	"github.com/gofiber/fiber/v2"
	appbil "github.com/tu-usuario/backoffice-pro/internal/application/billing"
	"github.com/tu-usuario/backoffice-pro/internal/application/dto"
)

// PaymentHandler maneja las peticiones HTTP de conciliación de pagos.
type PaymentHandler struct {
	uc *appbil.ReconcilePaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *appbil.ReconcilePaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Apply aplica un pago a una factura emitida.
// POST /api/invoices/:id/payments
func (h *PaymentHandler) Apply(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.uc.ApplyPayment(c.Context(), companyID, userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// List lista los pagos vigentes de una factura.
// GET /api/invoices/:id/payments
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	payments, err := h.uc.ListPayments(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payments)
}

// Reverse reversa un pago aplicado y descuenta su monto de la factura.
// DELETE /api/payments/:id
func (h *PaymentHandler) Reverse(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	payment, err := h.uc.ReversePayment(c.Context(), companyID, userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payment)
}
