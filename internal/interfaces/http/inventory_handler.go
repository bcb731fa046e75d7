package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/backoffice-pro/internal/application/dto"
	appinv "github.com/tu-usuario/backoffice-pro/internal/application/inventory"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario.
type InventoryHandler struct {
	ledger  *appinv.LedgerUseCase
	balance *appinv.BalanceUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *appinv.LedgerUseCase, balance *appinv.BalanceUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, balance: balance}
}

// RegisterMovement anota un movimiento en el libro.
// POST /api/inventory/movements
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.Append(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListMovements lista movimientos por bodega o producto (uno de los dos filtros
// es obligatorio).
// GET /api/inventory/movements?warehouse_id=...&product_id=...&from=...&to=...
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	in.DefaultPage()

	var movements []*entity.StockMovement
	var err error
	switch {
	case in.WarehouseID != "":
		movements, err = h.ledger.ListByWarehouse(c.Context(), companyID, in.WarehouseID, in.From, in.To, in.Limit, in.Offset)
	case in.ProductID != "":
		movements, err = h.ledger.ListByProduct(c.Context(), companyID, in.ProductID, in.From, in.To, in.Limit, in.Offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id o product_id requerido"})
	}
	if err != nil {
		return respondError(c, err)
	}

	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// GetBalances retorna los balances derivados del libro (filtros opcionales).
// GET /api/inventory/balances?warehouse_id=...&product_id=...
func (h *InventoryHandler) GetBalances(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	balances, err := h.balance.CurrentBalance(c.Context(), companyID,
		c.Query("warehouse_id"), c.Query("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBalanceResponses(balances))
}

// Recalculate repliega el libro completo de la empresa y retorna los balances.
// POST /api/inventory/balances/recalculate
func (h *InventoryHandler) Recalculate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	balances, err := h.balance.Recalculate(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBalanceResponses(balances))
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:            m.ID,
		WarehouseID:   m.WarehouseID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

func toBalanceResponses(balances []*entity.StockBalance) []*dto.StockBalanceResponse {
	out := make([]*dto.StockBalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, &dto.StockBalanceResponse{
			WarehouseID:    b.WarehouseID,
			ProductID:      b.ProductID,
			OnHand:         b.OnHand,
			Reserved:       b.Reserved,
			Available:      b.Available,
			LastMovementAt: b.LastMovementAt,
		})
	}
	return out
}
