// Package term implements the operator-facing pages of the POS front-end:
// stock, sell, clients and history. Each page renders to a writer and calls
// the backend through the Backend interface.
//
// Failure surfacing deliberately mirrors the original front-end: list pages
// degrade to an empty table with a warning, create/update report a generic
// failure and carry on, and delete failures bubble up to the caller.
package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/mcoutinho/salesdesk/internal/checkout"
	"github.com/mcoutinho/salesdesk/internal/domain"
	"github.com/shopspring/decimal"
)

// Backend is the slice of the API client the pages depend on.
type Backend interface {
	ListStockItems(ctx context.Context) ([]domain.StockItem, error)
	SearchStockItems(ctx context.Context, name string) ([]domain.StockItem, error)
	CreateStockItem(ctx context.Context, req domain.StockItemRequest) (*domain.StockItem, error)
	UpdateStockItem(ctx context.Context, id int64, req domain.StockItemRequest) (*domain.StockItem, error)
	DeleteStockItem(ctx context.Context, id int64) error

	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, req domain.ClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, id int64, req domain.ClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, id int64) error

	ListSales(ctx context.Context) ([]domain.Sale, error)
	CreateSale(ctx context.Context, req domain.SaleRequest) (*domain.Sale, error)
}

// Pages bundles the dependencies shared by all pages.
type Pages struct {
	backend  Backend
	checkout *checkout.Service
	in       *bufio.Scanner
	out      io.Writer
	logger   *slog.Logger
}

// NewPages creates the page set. in is read line by line on the sell page.
func NewPages(backend Backend, co *checkout.Service, in io.Reader, out io.Writer, logger *slog.Logger) *Pages {
	return &Pages{
		backend:  backend,
		checkout: co,
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger.With("component", "term"),
	}
}

func (p *Pages) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// readLine prompts and reads one line. Returns false on EOF.
func (p *Pages) readLine(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		return "", false
	}
	return p.in.Text(), true
}

// money renders a decimal amount the way the original UI did.
func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func (p *Pages) renderStockTable(items []domain.StockItem) {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tPRICE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", it.ID, it.Name, it.Quantity, money(it.Price))
	}
	_ = tw.Flush()
}

func (p *Pages) renderClientTable(clients []domain.Client) {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCONTACT\tADDRESS")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Contact, c.Address)
	}
	_ = tw.Flush()
}
