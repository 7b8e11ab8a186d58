package term

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/mcoutinho/salesdesk/internal/cart"
	"github.com/mcoutinho/salesdesk/internal/checkout"
	"github.com/mcoutinho/salesdesk/internal/domain"
	"github.com/shopspring/decimal"
)

// Sell is the sales page: an interactive loop over a cart. Stock and clients
// load up front; `done` submits the cart through the checkout service.
func (p *Pages) Sell(ctx context.Context) error {
	products, err := p.backend.ListStockItems(ctx)
	if err != nil {
		p.logger.Warn("Stock list unavailable", "error", err)
		p.printf("warning: could not load stock items\n")
	}
	clients, err := p.backend.ListClients(ctx)
	if err != nil {
		p.logger.Warn("Client list unavailable", "error", err)
		p.printf("warning: could not load clients\n")
	}

	byID := make(map[int64]domain.StockItem, len(products))
	for _, it := range products {
		byID[it.ID] = it
	}

	c := cart.New()
	var selected *domain.Client

	p.printf("sell: %d products, %d clients loaded. Type 'help' for commands.\n",
		len(products), len(clients))

	for {
		line, ok := p.readLine("> ")
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			p.printf("commands: list [filter], add <id>, rm <id>, cart, clients, client <id>, done, quit\n")

		case "list":
			filtered := products
			if len(args) > 0 {
				needle := strings.ToLower(strings.Join(args, " "))
				filtered = nil
				for _, it := range products {
					if strings.Contains(strings.ToLower(it.Name), needle) {
						filtered = append(filtered, it)
					}
				}
			}
			p.renderStockTable(filtered)

		case "add":
			item, ok := p.lookupItem(byID, args)
			if !ok {
				continue
			}
			c.Add(item)
			p.printf("%s x%d in cart\n", item.Name, lineQuantity(c, item.ID))

		case "rm":
			item, ok := p.lookupItem(byID, args)
			if !ok {
				continue
			}
			c.Remove(item.ID)
			p.printf("removed one %s\n", item.Name)

		case "cart":
			p.renderCart(c)

		case "clients":
			p.renderClientTable(clients)

		case "client":
			if len(args) != 1 {
				p.printf("usage: client <id>\n")
				continue
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				p.printf("invalid client id %q\n", args[0])
				continue
			}
			selected = nil
			for i := range clients {
				if clients[i].ID == id {
					selected = &clients[i]
					break
				}
			}
			if selected == nil {
				p.printf("no client with id %d\n", id)
				continue
			}
			p.printf("selected client %s\n", selected.Name)

		case "done":
			sale, err := p.checkout.Submit(ctx, c, selected)
			switch {
			case errors.Is(err, checkout.ErrEmptyCart):
				p.printf("add items to the cart before finishing the sale\n")
			case errors.Is(err, checkout.ErrNoClient):
				p.printf("select a client before finishing the sale\n")
			case err != nil:
				p.printf("sale failed, please try again\n")
			default:
				p.printf("sale %d recorded, total %s\n", sale.ID, money(sale.TotalPrice))
				// reload stock so quantities reflect the sale
				if refreshed, err := p.backend.ListStockItems(ctx); err == nil {
					products = refreshed
					byID = make(map[int64]domain.StockItem, len(products))
					for _, it := range products {
						byID[it.ID] = it
					}
				}
			}

		case "quit", "exit":
			return nil

		default:
			p.printf("unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (p *Pages) lookupItem(byID map[int64]domain.StockItem, args []string) (domain.StockItem, bool) {
	if len(args) != 1 {
		p.printf("usage: add|rm <product id>\n")
		return domain.StockItem{}, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		p.printf("invalid product id %q\n", args[0])
		return domain.StockItem{}, false
	}
	item, ok := byID[id]
	if !ok {
		p.printf("no product with id %d\n", id)
		return domain.StockItem{}, false
	}
	return item, true
}

func (p *Pages) renderCart(c *cart.Cart) {
	if c.Len() == 0 {
		p.printf("cart is empty\n")
		return
	}
	for _, l := range c.Lines() {
		p.printf("  %s x%d  %s\n", l.Name, l.Quantity, money(l.Price.Mul(decimal.NewFromInt(l.Quantity))))
	}
	p.printf("items: %d  total: %s\n", c.ItemCount(), money(c.Total()))
}

func lineQuantity(c *cart.Cart, productID int64) int64 {
	for _, l := range c.Lines() {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}
