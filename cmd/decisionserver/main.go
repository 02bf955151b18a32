// Command decisionserver exposes PolicyEngine.Decide over a WebSocket
// control channel (spec.md §1 keeps "network table-state acquisition" out
// of core scope). A bot connects, posts a state_update frame for each hand
// it's facing, and reads back a decision frame.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/nlhe/decisionengine/internal/config"
	"github.com/nlhe/decisionengine/internal/decisionserver"
	"github.com/nlhe/decisionengine/internal/policy"
)

var CLI struct {
	Addr     string `short:"a" help:"address to bind to" default:":8765"`
	Config   string `short:"c" help:"optional .hcl file overriding engine tunables"`
	LogLevel string `short:"l" help:"debug, info, warn, or error" default:"info"`
}

func main() {
	ctx := kong.Parse(&CLI)
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "decisionserver"})

	switch CLI.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	cfg := config.Default()
	if CLI.Config != "" {
		loaded, err := config.Load(CLI.Config)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			ctx.Exit(1)
		}
		cfg = loaded
	}

	engine := policy.NewEngine(cfg)
	srv := decisionserver.NewServer(engine, logger)

	runCtx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("listening", "addr", CLI.Addr)
	if err := srv.ListenAndServe(runCtx, CLI.Addr); err != nil {
		logger.Error("server failed", "error", err)
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		ctx.Exit(1)
	}
}
