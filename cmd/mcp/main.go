package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/EarningsAPI/internal/bootstrap"
	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/mcpserver"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
)

func main() {
	config.LoadDotEnv()
	// stdout carries the protocol
	logger_i.Init(os.Stderr, slog.LevelInfo)
	logger := logger_i.NewLogger("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver, err := bootstrap.NewDriver(ctx)
	if err != nil {
		logger.Error("Could not start the summariser", "error", err)
		os.Exit(1)
	}
	server, err := mcpserver.NewServer(driver)
	if err != nil {
		logger.Error("Could not create MCP server", "error", err)
		os.Exit(1)
	}
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
}
