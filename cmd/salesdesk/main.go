// Package main implements the salesdesk terminal front-end.
//
// Usage:
//
//	salesdesk stock [list|search <name>|add ...|update ...|rm <id>]
//	salesdesk sell
//	salesdesk clients [list|add ...|update ...|rm <id>]
//	salesdesk history
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoutinho/salesdesk/internal/api"
	"github.com/mcoutinho/salesdesk/internal/checkout"
	"github.com/mcoutinho/salesdesk/internal/config"
	"github.com/mcoutinho/salesdesk/internal/term"
	"github.com/mcoutinho/salesdesk/pkg/bootstrap"
	"github.com/mcoutinho/salesdesk/pkg/config/configloader"
)

const appName = "salesdesk"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, builds the API client and dispatches to the page
// named by the first argument.
func run(ctx context.Context, args []string) error {
	cfg, cfgErr := configloader.Load[*config.Config](appName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	backend := api.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
	co := checkout.NewService(backend, logger)
	pages := term.NewPages(backend, co, os.Stdin, os.Stdout, logger)

	if len(args) == 0 {
		return fmt.Errorf("usage: %s <stock|sell|clients|history> [args]", appName)
	}

	page := args[0]
	rest := args[1:]
	switch page {
	case "stock":
		return pages.Stock(ctx, rest)
	case "sell":
		return pages.Sell(ctx)
	case "clients":
		return pages.Clients(ctx, rest)
	case "history":
		return pages.History(ctx)
	}
	return fmt.Errorf("unknown page %q, want stock, sell, clients or history", page)
}
