package term

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mcoutinho/salesdesk/internal/checkout"
	"github.com/mcoutinho/salesdesk/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBackend is a mock implementation of the Backend interface
type mockBackend struct {
	items   []domain.StockItem
	clients []domain.Client
	sales   []domain.Sale
	sale    *domain.Sale
	error   error

	saleRequests []domain.SaleRequest
	deletedIDs   []int64
}

func (m *mockBackend) ListStockItems(_ context.Context) ([]domain.StockItem, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.items, nil
}

func (m *mockBackend) SearchStockItems(_ context.Context, name string) ([]domain.StockItem, error) {
	if m.error != nil {
		return nil, m.error
	}
	var out []domain.StockItem
	for _, it := range m.items {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(name)) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockBackend) CreateStockItem(_ context.Context, req domain.StockItemRequest) (*domain.StockItem, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &domain.StockItem{ID: 1, Name: req.Name, Quantity: req.Quantity, Price: req.Price}, nil
}

func (m *mockBackend) UpdateStockItem(_ context.Context, id int64, req domain.StockItemRequest) (*domain.StockItem, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &domain.StockItem{ID: id, Name: req.Name, Quantity: req.Quantity, Price: req.Price}, nil
}

func (m *mockBackend) DeleteStockItem(_ context.Context, id int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return m.error
}

func (m *mockBackend) ListClients(_ context.Context) ([]domain.Client, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.clients, nil
}

func (m *mockBackend) CreateClient(_ context.Context, req domain.ClientRequest) (*domain.Client, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &domain.Client{ID: 1, Name: req.Name, Contact: req.Contact, Address: req.Address}, nil
}

func (m *mockBackend) UpdateClient(_ context.Context, id int64, req domain.ClientRequest) (*domain.Client, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &domain.Client{ID: id, Name: req.Name, Contact: req.Contact, Address: req.Address}, nil
}

func (m *mockBackend) DeleteClient(_ context.Context, id int64) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return m.error
}

func (m *mockBackend) ListSales(_ context.Context) ([]domain.Sale, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.sales, nil
}

func (m *mockBackend) CreateSale(_ context.Context, req domain.SaleRequest) (*domain.Sale, error) {
	m.saleRequests = append(m.saleRequests, req)
	if m.error != nil {
		return nil, m.error
	}
	return m.sale, nil
}

func newPages(backend *mockBackend, input string) (*Pages, *bytes.Buffer) {
	logger := slog.New(slog.DiscardHandler)
	out := &bytes.Buffer{}
	co := checkout.NewService(backend, logger)
	return NewPages(backend, co, strings.NewReader(input), out, logger), out
}

func testItems() []domain.StockItem {
	return []domain.StockItem{
		{ID: 1, Name: "Coffee", Quantity: 10, Price: decimal.RequireFromString("10.00")},
		{ID: 2, Name: "Milk", Quantity: 10, Price: decimal.RequireFromString("5.50")},
	}
}

func Test_Pages_Stock_List(t *testing.T) {
	// given
	backend := &mockBackend{items: testItems()}
	pages, out := newPages(backend, "")
	// when
	err := pages.Stock(context.Background(), nil)
	// then
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Coffee")
	assert.Contains(t, out.String(), "R$ 5.50")
}

func Test_Pages_Stock_ListDegradesToEmptyTableOnFailure(t *testing.T) {
	// given a backend that is down
	backend := &mockBackend{error: errors.New("backend down")}
	pages, out := newPages(backend, "")
	// when
	err := pages.Stock(context.Background(), []string{"list"})
	// then: no error escapes, the page warns and renders an empty table
	require.NoError(t, err)
	assert.Contains(t, out.String(), "warning")
	assert.Contains(t, out.String(), "ID")
}

func Test_Pages_Stock_CreateFailureIsReportedNotPropagated(t *testing.T) {
	// given
	backend := &mockBackend{error: errors.New("backend down")}
	pages, out := newPages(backend, "")
	// when
	err := pages.Stock(context.Background(), []string{"add", "-name", "Coffee", "-qty", "5", "-price", "10.00"})
	// then
	require.NoError(t, err)
	assert.Contains(t, out.String(), "could not create stock item")
}

func Test_Pages_Stock_DeleteFailurePropagates(t *testing.T) {
	// given
	backend := &mockBackend{error: errors.New("backend down")}
	pages, _ := newPages(backend, "")
	// when
	err := pages.Stock(context.Background(), []string{"rm", "3"})
	// then: deletes bubble up, unlike lists and mutators
	require.Error(t, err)
	assert.Equal(t, []int64{3}, backend.deletedIDs)
}

func Test_Pages_Clients_DeleteFailurePropagates(t *testing.T) {
	backend := &mockBackend{error: errors.New("backend down")}
	pages, _ := newPages(backend, "")

	err := pages.Clients(context.Background(), []string{"rm", "9"})

	require.Error(t, err)
	assert.Equal(t, []int64{9}, backend.deletedIDs)
}

func Test_Pages_History_RendersSnapshots(t *testing.T) {
	// given one sale with snapshots and one legacy sale without
	backend := &mockBackend{sales: []domain.Sale{
		{
			ID: 1, ProductName: "Coffee", Quantity: 3,
			TotalPrice: decimal.RequireFromString("30.00"),
			Client:     &domain.Client{ID: 7, Name: "Maria", Contact: "(11) 91234-5678", Address: "Rua A, 1"},
			Product:    &domain.StockItem{ID: 1, Name: "Coffee", Quantity: 5, Price: decimal.RequireFromString("10.00")},
		},
		{ID: 2, ProductName: "Milk", Quantity: 1, TotalPrice: decimal.RequireFromString("5.50")},
	}}
	pages, out := newPages(backend, "")
	// when
	err := pages.History(context.Background())
	// then
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Maria")
	assert.Contains(t, out.String(), "R$ 30.00")
	// absent snapshots render as dashes
	assert.Contains(t, out.String(), "-")
}

func Test_Pages_Sell_FullFlow(t *testing.T) {
	// given
	backend := &mockBackend{
		items:   testItems(),
		clients: []domain.Client{{ID: 7, Name: "Maria", Contact: "(11) 91234-5678", Address: "Rua A, 1"}},
		sale:    &domain.Sale{ID: 42, ProductName: "Coffee", Quantity: 3, TotalPrice: decimal.RequireFromString("21.00")},
	}
	script := strings.Join([]string{
		"add 1",
		"add 2",
		"add 2",
		"cart",
		"client 7",
		"done",
		"quit",
	}, "\n") + "\n"
	pages, out := newPages(backend, script)

	// when
	err := pages.Sell(context.Background())

	// then
	require.NoError(t, err)
	require.Len(t, backend.saleRequests, 1)
	req := backend.saleRequests[0]
	assert.Equal(t, "Coffee", req.ProductName)
	assert.Equal(t, int64(3), req.Quantity)
	assert.Equal(t, "21.00", req.TotalPrice.StringFixed(2))
	require.NotNil(t, req.ClientID)
	assert.Equal(t, int64(7), *req.ClientID)
	assert.Contains(t, out.String(), "sale 42 recorded")
	assert.Contains(t, out.String(), "total: R$ 21.00")
}

func Test_Pages_Sell_Guards(t *testing.T) {
	// given
	backend := &mockBackend{
		items:   testItems(),
		clients: []domain.Client{{ID: 7, Name: "Maria", Contact: "(11) 91234-5678", Address: "Rua A, 1"}},
	}
	script := "done\nadd 1\ndone\nquit\n"
	pages, out := newPages(backend, script)

	// when
	err := pages.Sell(context.Background())

	// then: both guards fire before any sale request is made
	require.NoError(t, err)
	assert.Empty(t, backend.saleRequests)
	assert.Contains(t, out.String(), "add items to the cart")
	assert.Contains(t, out.String(), "select a client")
}
