package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-pro/internal/application/dto"
	apporders "github.com/tu-usuario/backoffice-pro/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP de órdenes de venta.
type OrderHandler struct {
	uc *apporders.CreateOrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *apporders.CreateOrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create crea una orden de venta con sus líneas.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetByID obtiene una orden con sus líneas.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	order, err := h.uc.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// List lista las órdenes de la empresa.
// GET /api/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	page.DefaultPage()
	orders, err := h.uc.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
