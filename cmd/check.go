package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured LLM backend is reachable and the model is available",
	Run: func(_ *cobra.Command, _ []string) {
		if !check() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func check() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger, err := newLogger("stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	gateway, err := newGateway(ctx, config.LLM, logger)
	if err != nil {
		logger.Fatal("building llm gateway", zap.Error(err))
	}

	if !gateway.Available(ctx) {
		fmt.Printf("✗ %s model %q is not available\n", gateway.Provider(), gateway.Model())
		return false
	}

	fmt.Printf("✓ %s model %q is available\n", gateway.Provider(), gateway.Model())
	return true
}
