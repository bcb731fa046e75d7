package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-pro/internal/application/audit"
	"github.com/tu-usuario/backoffice-pro/internal/application/dto"
	"github.com/tu-usuario/backoffice-pro/internal/application/numbering"
	"github.com/tu-usuario/backoffice-pro/internal/domain"
	"github.com/tu-usuario/backoffice-pro/internal/domain/entity"
	"github.com/tu-usuario/backoffice-pro/internal/domain/money"
	"github.com/tu-usuario/backoffice-pro/internal/domain/repository"
)

// CreateOrderUseCase crea órdenes de venta con sus líneas. Los subtotales de
// línea viajan sin redondear; neto e impuesto se redondean half-up a 2
// decimales solo al cierre y el gran total es su suma exacta.
type CreateOrderUseCase struct {
	txRunner      TxRunner
	allocator     *numbering.Allocator
	customerRepo  repository.CustomerRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	companyRepo   repository.CompanyRepository
	orderRepo     repository.OrderRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	allocator *numbering.Allocator,
	customerRepo repository.CustomerRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	orderRepo repository.OrderRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:      txRunner,
		allocator:     allocator,
		customerRepo:  customerRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		companyRepo:   companyRepo,
		orderRepo:     orderRepo,
	}
}

// Create valida cliente, bodega y productos contra la empresa, calcula los
// totales con aritmética decimal y persiste orden + líneas + auditoría en una
// transacción. El consecutivo ORD se reserva antes: un rollback deja hueco,
// nunca número repetido.
func (uc *CreateOrderUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if companyID == "" || in.CustomerID == "" || in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !warehouse.AcceptsMovements() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	orderID := uuid.New().String()
	net := money.Zero()
	tax := money.Zero()
	items := make([]*entity.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.ProductID == "" || !line.Quantity.IsPositive() || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		subtotal := money.New(unitPrice).MulScalar(line.Quantity)
		net = net.Add(subtotal)
		tax = tax.Add(subtotal.MulScalar(product.TaxRate))
		items = append(items, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			TaxRate:   product.TaxRate,
			Subtotal:  subtotal.Amount(),
		})
	}

	currency := in.Currency
	if currency == "" {
		company, err := uc.companyRepo.GetByID(companyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
		currency = company.Currency
	}

	number, _, err := uc.allocator.Next(ctx, companyID, entity.DocumentKindOrder, now.Year())
	if err != nil {
		return nil, err
	}

	// El gran total se forma con los parciales ya redondeados para que
	// siempre cuadre: grand_total = net_total + tax_total, centavo a centavo.
	netTotal := net.RoundCurrency()
	taxTotal := tax.RoundCurrency()
	order := &entity.Order{
		ID:          orderID,
		CompanyID:   companyID,
		CustomerID:  in.CustomerID,
		WarehouseID: in.WarehouseID,
		OrderNumber: number,
		Status:      entity.OrderStatusOpen,
		NetTotal:    netTotal.Amount(),
		TaxTotal:    taxTotal.Amount(),
		GrandTotal:  netTotal.Add(taxTotal).Amount(),
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   userID,
	}

	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		auditRepo repository.AuditRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range items {
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return auditRepo.Create(audit.Entry(
			companyID, userID, entity.AuditActionCreate, "order", order.ID, nil, order,
		))
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// Get obtiene una orden con sus líneas.
func (uc *CreateOrderUseCase) Get(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.GetItemsByOrderID(id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// List lista las órdenes de la empresa.
func (uc *CreateOrderUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o, nil))
	}
	return out, nil
}

func toOrderResponse(order *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          order.ID,
		CompanyID:   order.CompanyID,
		CustomerID:  order.CustomerID,
		WarehouseID: order.WarehouseID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		NetTotal:    order.NetTotal,
		TaxTotal:    order.TaxTotal,
		GrandTotal:  order.GrandTotal,
		Currency:    order.Currency,
		CreatedAt:   order.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}
