package term

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// History is the sale history page: one row per sale with the denormalized
// client and product snapshot columns.
func (p *Pages) History(ctx context.Context) error {
	sales, err := p.backend.ListSales(ctx)
	if err != nil {
		p.logger.Warn("Sale history unavailable", "error", err)
		p.printf("warning: could not load sale history\n")
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tQTY\tTOTAL\tCLIENT\tPRODUCT ID\tON HAND\tUNIT PRICE")
	for _, s := range sales {
		clientName := "-"
		if s.Client != nil {
			clientName = s.Client.Name
		}
		productID, onHand, unitPrice := "-", "-", "-"
		if s.Product != nil {
			productID = fmt.Sprintf("%d", s.Product.ID)
			onHand = fmt.Sprintf("%d", s.Product.Quantity)
			unitPrice = money(s.Product.Price)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.ProductName, s.Quantity, money(s.TotalPrice),
			clientName, productID, onHand, unitPrice)
	}
	return tw.Flush()
}
