// Command shipbell relays deployment lifecycle events to connected
// dashboards in real time: webhook in, notification stream out.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quayside/shipbell/internal/api"
	"github.com/quayside/shipbell/internal/config"
	"github.com/quayside/shipbell/internal/hub"
	"github.com/quayside/shipbell/internal/log"
	"github.com/quayside/shipbell/internal/notify"
	"github.com/quayside/shipbell/internal/webhook"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("shipbell version %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shipbell: %v\n", err)
		os.Exit(1)
	}

	log.Setup(cfg.LogLevel, cfg.LogFormat)
	logger := log.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := notify.NewStore(cfg.HistoryCapacity)
	broadcaster := hub.New(store, log.WithComponent("hub"))
	verifier := webhook.NewVerifier(cfg.WebhookSecret)

	go broadcaster.Run(ctx)

	server := api.New(api.Config{
		Addr:            cfg.Addr(),
		SignatureHeader: cfg.SignatureHeader,
	}, store, broadcaster, verifier, log.WithComponent("api"))

	logger.Info("shipbell starting",
		"version", version,
		"listen", cfg.Addr(),
		"history_capacity", cfg.HistoryCapacity,
		"signature_enforced", verifier.Enabled(),
	)

	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}

	logger.Info("shipbell stopped")
}
