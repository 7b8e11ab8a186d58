// Package api implements the typed HTTP+JSON client for the inventory backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/mcoutinho/salesdesk/internal/domain"
	"github.com/mcoutinho/salesdesk/pkg/web"
)

// Client talks to the inventory backend under its /api base path.
// Every call returns a typed error on failure: *StatusError for non-2xx
// answers (ErrNotFound for 404), wrapped transport errors for network
// failures, and decode or validation errors for malformed 2xx bodies.
// Callers decide how to surface those.
type Client struct {
	http     *resty.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a Client for the backend at baseURL, e.g. "http://localhost:5000/api".
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	hc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	hc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get(web.HeaderRequestID) == "" {
			r.SetHeader(web.HeaderRequestID, uuid.NewString())
		}
		return nil
	})
	return &Client{
		http:     hc,
		validate: domain.NewValidator(),
		logger:   logger.With("component", "api"),
	}
}

// ListStockItems fetches all stock items.
func (c *Client) ListStockItems(ctx context.Context) ([]domain.StockItem, error) {
	var items []domain.StockItem
	resp, err := c.http.R().SetContext(ctx).SetResult(&items).Get("/stock-items")
	if err != nil {
		return nil, fmt.Errorf("fetch stock items: %w", err)
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	if err := validateAll(c.validate, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SearchStockItems looks up stock items by name. The backend's response shape
// for this endpoint is not pinned down, so both a single object and an array
// are accepted; a single object comes back as a one-element slice.
func (c *Client) SearchStockItems(ctx context.Context, name string) ([]domain.StockItem, error) {
	resp, err := c.http.R().SetContext(ctx).
		SetPathParam("name", name).
		Get("/stock-items/{name}")
	if err != nil {
		return nil, fmt.Errorf("search stock items: %w", err)
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	body := resp.Body()
	var items []domain.StockItem
	if err := json.Unmarshal(body, &items); err != nil {
		var single domain.StockItem
		if err2 := json.Unmarshal(body, &single); err2 != nil {
			return nil, fmt.Errorf("decode stock item search response: %w", err)
		}
		items = []domain.StockItem{single}
	}
	if err := validateAll(c.validate, items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateStockItem adds a new stock item and returns the server-assigned record.
func (c *Client) CreateStockItem(ctx context.Context, req domain.StockItemRequest) (*domain.StockItem, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid stock item request: %w", err)
	}
	var item domain.StockItem
	resp, err := c.http.R().SetContext(ctx).
		SetBody(req).
		SetResult(&item).
		Post("/stock-items")
	if err != nil {
		return nil, fmt.Errorf("create stock item: %w", err)
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(item); err != nil {
		return nil, fmt.Errorf("invalid stock item response: %w", err)
	}
	return &item, nil
}

// UpdateStockItem replaces the stock item with the given id.
func (c *Client) UpdateStockItem(ctx context.Context, id int64, req domain.StockItemRequest) (*domain.StockItem, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid stock item request: %w", err)
	}
	var item domain.StockItem
	resp, err := c.http.R().SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(req).
		SetResult(&item).
		Put("/stock-items/{id}")
	if err != nil {
		return nil, fmt.Errorf("update stock item %d: %w", id, err)
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(item); err != nil {
		return nil, fmt.Errorf("invalid stock item response: %w", err)
	}
	return &item, nil
}

// DeleteStockItem removes the stock item with the given id.
func (c *Client) DeleteStockItem(ctx context.Context, id int64) error {
	resp, err := c.http.R().SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/stock-items/{id}")
	if err != nil {
		return fmt.Errorf("delete stock item %d: %w", id, err)
	}
	return c.check(resp)
}

// ListClients fetches the client directory.
func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	resp, err := c.http.R().SetContext(ctx).SetResult(&clients).Get("/clients")
	if err != nil {
		return nil, fmt.Errorf("fetch clients: %w", err)
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	if err := validateAll(c.validate, clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// CreateClient adds a new client to the directory.
func (c *Client) CreateClient(ctx context.Context, req domain.ClientRequest) (*domain.Client, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid client request: %w", err)
	}
	var created domain.Client
	resp, err := c.http.R().SetContext(ctx).
		SetBody(req).
		SetResult(&created).
		Post("/clients")
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(created); err != nil {
		return nil, fmt.Errorf("invalid client response: %w", err)
	}
	return &created, nil
}

// UpdateClient replaces the client with the given id.
func (c *Client) UpdateClient(ctx context.Context, id int64, req domain.ClientRequest) (*domain.Client, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid client request: %w", err)
	}
	var updated domain.Client
	resp, err := c.http.R().SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(req).
		SetResult(&updated).
		Put("/clients/{id}")
	if err != nil {
		return nil, fmt.Errorf("update client %d: %w", id, err)
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(updated); err != nil {
		return nil, fmt.Errorf("invalid client response: %w", err)
	}
	return &updated, nil
}

// DeleteClient removes the client with the given id.
func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	resp, err := c.http.R().SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/clients/{id}")
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return c.check(resp)
}

// ListSales fetches the sale history.
func (c *Client) ListSales(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	resp, err := c.http.R().SetContext(ctx).SetResult(&sales).Get("/sales")
	if err != nil {
		return nil, fmt.Errorf("fetch sales: %w", err)
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	if err := validateAll(c.validate, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// CreateSale records a completed sale.
func (c *Client) CreateSale(ctx context.Context, req domain.SaleRequest) (*domain.Sale, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid sale request: %w", err)
	}
	var sale domain.Sale
	resp, err := c.http.R().SetContext(ctx).
		SetBody(req).
		SetResult(&sale).
		Post("/sales")
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	if err := c.check(resp); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(sale); err != nil {
		return nil, fmt.Errorf("invalid sale response: %w", err)
	}
	return &sale, nil
}

// check maps a non-2xx response to a StatusError.
func (c *Client) check(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	req := resp.Request
	c.logger.Warn("Backend returned error status",
		"method", req.Method,
		"url", req.URL,
		"status", resp.StatusCode(),
	)
	return &StatusError{Method: req.Method, Path: req.URL, Code: resp.StatusCode()}
}

func validateAll[T any](v *validator.Validate, items []T) error {
	for i := range items {
		if err := v.Struct(items[i]); err != nil {
			return fmt.Errorf("invalid response item %d: %w", i, err)
		}
	}
	return nil
}
