package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shoplite/shoplite/internal/dto"
	"github.com/shoplite/shoplite/internal/repository"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// AddItem accumulates quantity onto any existing entry for the same
// product. Stock is not checked here; only checkout enforces it.
func (s *CartService) AddItem(ctx context.Context, customerID int64, req dto.AddCartItemRequest) error {
	if req.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	if err := s.cartRepo.AddItem(ctx, customerID, req.ProductID, req.Quantity); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// GetCart values every line at the product's current price.
func (s *CartService) GetCart(ctx context.Context, customerID int64) (*dto.CartResponse, error) {
	lines, err := s.cartRepo.Lines(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	resp := &dto.CartResponse{Lines: make([]dto.CartLineResponse, 0, len(lines)), Total: decimal.Zero}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal,
		})
		resp.Total = resp.Total.Add(line.Subtotal)
	}
	return resp, nil
}

func (s *CartService) Clear(ctx context.Context, customerID int64) error {
	if err := s.cartRepo.Clear(ctx, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
