package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spigell/offer-matcher/internal/tools"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the offer analysis tools over stdio (JSON-RPC 2.0, MCP compatible)",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol.
	logger, err := newLogger("stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	d, err := newDeps(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing components", zap.Error(err))
	}
	defer d.Close()

	registry := tools.NewOfferRegistry(tools.Services{
		Resumes:   d.parser,
		Companies: d.companies,
		Matcher:   d.engine,
	}, logger.Named("tools"))

	logger.Info("starting the offer-matcher tool server",
		zap.String("version", version),
		zap.String("llm_provider", d.gateway.Provider()),
		zap.String("llm_model", d.gateway.Model()),
	)

	server, err := tools.NewServer(registry, app, version, logger.Named("server"))
	if err != nil {
		logger.Fatal("building the tool server", zap.Error(err))
	}
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Error("tool server stopped", zap.Error(err))
	}
}
