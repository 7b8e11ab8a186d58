// Package stub is the bundled in-memory implementation of the inventory
// backend's REST contract. It exists so the front-end and the client tests
// have a realistic target; nothing here persists.
package stub

import (
	"errors"
	"strings"
	"sync"

	"github.com/mcoutinho/salesdesk/internal/domain"
)

var (
	ErrStockItemNotFound = errors.New("stock item not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrProductNotFound   = errors.New("no stock item with that product name")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store holds all backend state behind one mutex. IDs are server-assigned,
// incrementing per resource, and never reused within a process.
type Store struct {
	mu          sync.Mutex
	stock       map[int64]domain.StockItem
	stockOrder  []int64
	clients     map[int64]domain.Client
	clientOrder []int64
	sales       []domain.Sale

	nextStockID  int64
	nextClientID int64
	nextSaleID   int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		stock:        make(map[int64]domain.StockItem),
		clients:      make(map[int64]domain.Client),
		nextStockID:  1,
		nextClientID: 1,
		nextSaleID:   1,
	}
}

// ListStockItems returns all stock items in creation order.
func (s *Store) ListStockItems() []domain.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]domain.StockItem, 0, len(s.stockOrder))
	for _, id := range s.stockOrder {
		list = append(list, s.stock[id])
	}
	return list
}

// SearchStockItems returns items whose name contains the query, case-insensitively.
func (s *Store) SearchStockItems(name string) []domain.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(name)
	list := make([]domain.StockItem, 0)
	for _, id := range s.stockOrder {
		if strings.Contains(strings.ToLower(s.stock[id].Name), needle) {
			list = append(list, s.stock[id])
		}
	}
	return list
}

// CreateStockItem adds a stock item and returns it with its assigned id.
func (s *Store) CreateStockItem(req domain.StockItemRequest) domain.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.StockItem{
		ID:       s.nextStockID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
	s.nextStockID++
	s.stock[item.ID] = item
	s.stockOrder = append(s.stockOrder, item.ID)
	return item
}

// UpdateStockItem replaces the named fields of an existing item.
// Returns ErrStockItemNotFound if the id is unknown.
func (s *Store) UpdateStockItem(id int64, req domain.StockItemRequest) (*domain.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.stock[id]
	if !ok {
		return nil, ErrStockItemNotFound
	}
	item.Name = req.Name
	item.Quantity = req.Quantity
	item.Price = req.Price
	s.stock[id] = item
	return &item, nil
}

// DeleteStockItem removes an item. Sales keep their snapshots.
// Returns ErrStockItemNotFound if the id is unknown.
func (s *Store) DeleteStockItem(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stock[id]; !ok {
		return ErrStockItemNotFound
	}
	delete(s.stock, id)
	for i, sid := range s.stockOrder {
		if sid == id {
			s.stockOrder = append(s.stockOrder[:i], s.stockOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ListClients returns all clients in creation order.
func (s *Store) ListClients() []domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]domain.Client, 0, len(s.clientOrder))
	for _, id := range s.clientOrder {
		list = append(list, s.clients[id])
	}
	return list
}

// CreateClient adds a client and returns it with its assigned id.
func (s *Store) CreateClient(req domain.ClientRequest) domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := domain.Client{
		ID:      s.nextClientID,
		Name:    req.Name,
		Contact: req.Contact,
		Address: req.Address,
	}
	s.nextClientID++
	s.clients[client.ID] = client
	s.clientOrder = append(s.clientOrder, client.ID)
	return client
}

// UpdateClient replaces the named fields of an existing client.
// Returns ErrClientNotFound if the id is unknown.
func (s *Store) UpdateClient(id int64, req domain.ClientRequest) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}
	client.Name = req.Name
	client.Contact = req.Contact
	client.Address = req.Address
	s.clients[id] = client
	return &client, nil
}

// DeleteClient removes a client. Sales keep their snapshots.
// Returns ErrClientNotFound if the id is unknown.
func (s *Store) DeleteClient(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return ErrClientNotFound
	}
	delete(s.clients, id)
	for i, cid := range s.clientOrder {
		if cid == id {
			s.clientOrder = append(s.clientOrder[:i], s.clientOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ListSales returns all recorded sales in creation order.
func (s *Store) ListSales() []domain.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]domain.Sale, len(s.sales))
	copy(list, s.sales)
	return list
}

// CreateSale records a sale against the stock item matching the request's
// product name, decrementing its on-hand quantity and embedding client and
// product snapshots taken before the decrement.
// Returns ErrProductNotFound, ErrClientNotFound or ErrInsufficientStock.
func (s *Store) CreateSale(req domain.SaleRequest) (*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var product *domain.StockItem
	for _, id := range s.stockOrder {
		item := s.stock[id]
		if strings.EqualFold(item.Name, req.ProductName) {
			product = &item
			break
		}
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.Quantity < req.Quantity {
		return nil, ErrInsufficientStock
	}

	var clientSnapshot *domain.Client
	if req.ClientID != nil {
		client, ok := s.clients[*req.ClientID]
		if !ok {
			return nil, ErrClientNotFound
		}
		clientSnapshot = &client
	}

	productSnapshot := *product
	product.Quantity -= req.Quantity
	s.stock[product.ID] = *product

	sale := domain.Sale{
		ID:          s.nextSaleID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		TotalPrice:  req.TotalPrice,
		Client:      clientSnapshot,
		Product:     &productSnapshot,
	}
	s.nextSaleID++
	s.sales = append(s.sales, sale)
	return &sale, nil
}
