package term

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/mcoutinho/salesdesk/internal/domain"
	"github.com/shopspring/decimal"
)

// Stock is the stock page. Verbs: list (default), search <name>,
// add/update with flags, rm <id>.
func (p *Pages) Stock(ctx context.Context, args []string) error {
	verb := "list"
	if len(args) > 0 {
		verb = args[0]
		args = args[1:]
	}

	switch verb {
	case "list":
		items, err := p.backend.ListStockItems(ctx)
		if err != nil {
			// list pages degrade to an empty table
			p.logger.Warn("Stock list unavailable", "error", err)
			p.printf("warning: could not load stock items\n")
		}
		p.renderStockTable(items)
		return nil

	case "search":
		if len(args) != 1 {
			return fmt.Errorf("usage: stock search <name>")
		}
		items, err := p.backend.SearchStockItems(ctx, args[0])
		if err != nil {
			p.logger.Warn("Stock search unavailable", "error", err)
			p.printf("warning: search failed\n")
		}
		p.renderStockTable(items)
		return nil

	case "add":
		req, err := parseStockFlags("stock add", args)
		if err != nil {
			return err
		}
		item, err := p.backend.CreateStockItem(ctx, *req)
		if err != nil {
			p.logger.Error("Stock item creation failed", "error", err)
			p.printf("could not create stock item, please try again\n")
			return nil
		}
		p.printf("created stock item %d (%s)\n", item.ID, item.Name)
		return nil

	case "update":
		fs := flag.NewFlagSet("stock update", flag.ContinueOnError)
		id := fs.Int64("id", 0, "stock item id")
		name := fs.String("name", "", "product name")
		qty := fs.Int64("qty", 0, "on-hand quantity")
		price := fs.String("price", "", "unit price, e.g. 10.50")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *id <= 0 {
			return fmt.Errorf("stock update: -id is required")
		}
		parsedPrice, err := decimal.NewFromString(*price)
		if err != nil {
			return fmt.Errorf("stock update: invalid -price %q", *price)
		}
		item, err := p.backend.UpdateStockItem(ctx, *id, domain.StockItemRequest{
			Name:     *name,
			Quantity: *qty,
			Price:    parsedPrice,
		})
		if err != nil {
			p.logger.Error("Stock item update failed", "id", *id, "error", err)
			p.printf("could not update stock item %d, please try again\n", *id)
			return nil
		}
		p.printf("updated stock item %d (%s)\n", item.ID, item.Name)
		return nil

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: stock rm <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("stock rm: invalid id %q", args[0])
		}
		// delete failures propagate
		if err := p.backend.DeleteStockItem(ctx, id); err != nil {
			return fmt.Errorf("delete stock item %d: %w", id, err)
		}
		p.printf("deleted stock item %d\n", id)
		return nil
	}
	return fmt.Errorf("unknown stock verb %q", verb)
}

func parseStockFlags(name string, args []string) (*domain.StockItemRequest, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	itemName := fs.String("name", "", "product name")
	qty := fs.Int64("qty", 0, "on-hand quantity")
	price := fs.String("price", "", "unit price, e.g. 10.50")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *itemName == "" {
		return nil, fmt.Errorf("%s: -name is required", name)
	}
	parsedPrice, err := decimal.NewFromString(*price)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid -price %q", name, *price)
	}
	return &domain.StockItemRequest{Name: *itemName, Quantity: *qty, Price: parsedPrice}, nil
}
