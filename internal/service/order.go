package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shoplite/shoplite/internal/dto"
	"github.com/shoplite/shoplite/internal/model"
	"github.com/shoplite/shoplite/internal/repository"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderAccessDenied = errors.New("access denied")
)

type OrderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo}
}

// Checkout converts the customer's cart into an immutable order. The cart
// lines are priced live at read time; those prices freeze into the order
// items. The order, its items, and the guarded stock decrements commit as
// one transaction; the cart is cleared only after that commit, so a failed
// clear can leave a stale cart but never a phantom order.
func (s *OrderService) Checkout(ctx context.Context, customerID int64, req dto.CheckoutRequest) (*dto.OrderResponse, error) {
	lines, err := s.cartRepo.Lines(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		total = total.Add(line.Subtotal)
		items = append(items, model.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}

	order := &model.Order{
		CustomerID:      customerID,
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Items:           items,
	}
	if _, err := s.orderRepo.Place(ctx, order); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	if err := s.cartRepo.Clear(ctx, customerID); err != nil {
		return nil, fmt.Errorf("clear cart after order %d: %w", order.ID, err)
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// ListOrders returns the customer's own orders; customerID 0 means all
// orders across all customers (admin view). Newest first.
func (s *OrderService) ListOrders(ctx context.Context, customerID int64) (*dto.OrderListResponse, error) {
	orders, err := s.orderRepo.List(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Orders: items, Total: len(items)}, nil
}

// GetOrder lets a customer read only their own order; admins pass isAdmin.
func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID int64, isAdmin bool) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isAdmin && order.CustomerID != customerID {
		return nil, ErrOrderAccessDenied
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		OrderDate:       order.OrderDate,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		Items:           items,
	}
}
