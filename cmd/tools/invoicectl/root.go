package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/shipledger/internal/app"
	"github.com/noah-isme/shipledger/internal/config"
	"github.com/noah-isme/shipledger/internal/obs"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Operate the shipment invoicing ledger from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSeedCmd(), newQuoteCmd(), newExportCmd())
	return root
}

// openDeps loads configuration and connects to the stores. Callers must Close
// the result.
func openDeps(ctx context.Context) (*app.Dependencies, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := obs.NewLogger(cfg.Obs.LogFormat, cfg.Obs.LogLevel).With().Str("component", "invoicectl").Logger()
	deps, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return nil, logger, err
	}
	return deps, logger, nil
}
