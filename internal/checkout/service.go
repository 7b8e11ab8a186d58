// Package checkout implements the sale submission flow: it turns the cart
// into a sale request, hands it to the backend, and reconciles local state.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoutinho/salesdesk/internal/cart"
	"github.com/mcoutinho/salesdesk/internal/domain"
)

// ErrEmptyCart is returned when a sale is submitted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// ErrNoClient is returned when a sale is submitted without a selected client.
var ErrNoClient = errors.New("no client selected")

// SaleCreator is the slice of the API client the checkout flow depends on.
type SaleCreator interface {
	CreateSale(ctx context.Context, req domain.SaleRequest) (*domain.Sale, error)
}

// Service coordinates the cart and the backend for sale submission.
type Service struct {
	backend SaleCreator
	logger  *slog.Logger
}

// NewService creates a checkout Service on top of the given backend.
func NewService(backend SaleCreator, logger *slog.Logger) *Service {
	return &Service{
		backend: backend,
		logger:  logger.With("component", "checkout"),
	}
}

// Submit records the cart as a sale for the selected client. The cart must be
// non-empty and a client must be selected; both are checked before any network
// call. On success the cart is cleared; on failure it is left untouched so the
// operator can retry.
func (s *Service) Submit(ctx context.Context, c *cart.Cart, client *domain.Client) (*domain.Sale, error) {
	if c.Len() == 0 {
		return nil, ErrEmptyCart
	}
	if client == nil {
		return nil, ErrNoClient
	}

	lines := c.Lines()
	req := domain.SaleRequest{
		ProductName: lines[0].Name,
		Quantity:    c.ItemCount(),
		TotalPrice:  c.Total(),
		ClientID:    &client.ID,
	}

	sale, err := s.backend.CreateSale(ctx, req)
	if err != nil {
		s.logger.Error("Sale submission failed", "client_id", client.ID, "error", err)
		return nil, fmt.Errorf("submit sale: %w", err)
	}

	s.logger.Info("Sale recorded",
		"sale_id", sale.ID,
		"client_id", client.ID,
		"items", req.Quantity,
		"total", req.TotalPrice.StringFixed(2),
	)
	c.Clear()
	return sale, nil
}
