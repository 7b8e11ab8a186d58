package term

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/mcoutinho/salesdesk/internal/domain"
)

// Clients is the client directory page. Verbs: list (default), add, update, rm.
// Contact must match the (DD) DDDDD-DDDD mask; the API client enforces it
// before anything goes on the wire.
func (p *Pages) Clients(ctx context.Context, args []string) error {
	verb := "list"
	if len(args) > 0 {
		verb = args[0]
		args = args[1:]
	}

	switch verb {
	case "list":
		clients, err := p.backend.ListClients(ctx)
		if err != nil {
			p.logger.Warn("Client list unavailable", "error", err)
			p.printf("warning: could not load clients\n")
		}
		p.renderClientTable(clients)
		return nil

	case "add":
		req, err := parseClientFlags("clients add", args)
		if err != nil {
			return err
		}
		client, err := p.backend.CreateClient(ctx, *req)
		if err != nil {
			p.logger.Error("Client creation failed", "error", err)
			p.printf("could not create client, please try again\n")
			return nil
		}
		p.printf("created client %d (%s)\n", client.ID, client.Name)
		return nil

	case "update":
		fs := flag.NewFlagSet("clients update", flag.ContinueOnError)
		id := fs.Int64("id", 0, "client id")
		name := fs.String("name", "", "client name")
		contact := fs.String("contact", "", "phone, (DD) DDDDD-DDDD")
		address := fs.String("address", "", "street address")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *id <= 0 {
			return fmt.Errorf("clients update: -id is required")
		}
		client, err := p.backend.UpdateClient(ctx, *id, domain.ClientRequest{
			Name:    *name,
			Contact: *contact,
			Address: *address,
		})
		if err != nil {
			p.logger.Error("Client update failed", "id", *id, "error", err)
			p.printf("could not update client %d, please try again\n", *id)
			return nil
		}
		p.printf("updated client %d (%s)\n", client.ID, client.Name)
		return nil

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: clients rm <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("clients rm: invalid id %q", args[0])
		}
		if err := p.backend.DeleteClient(ctx, id); err != nil {
			return fmt.Errorf("delete client %d: %w", id, err)
		}
		p.printf("deleted client %d\n", id)
		return nil
	}
	return fmt.Errorf("unknown clients verb %q", verb)
}

func parseClientFlags(name string, args []string) (*domain.ClientRequest, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clientName := fs.String("name", "", "client name")
	contact := fs.String("contact", "", "phone, (DD) DDDDD-DDDD")
	address := fs.String("address", "", "street address")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *clientName == "" {
		return nil, fmt.Errorf("%s: -name is required", name)
	}
	return &domain.ClientRequest{Name: *clientName, Contact: *contact, Address: *address}, nil
}
