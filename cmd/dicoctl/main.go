package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dicoslang/backoffice/internal/config"
	"github.com/dicoslang/backoffice/internal/services"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dicoctl",
		Short: "Operator tool for the DicoSlang back-office",
		Long: `dicoctl seeds and bootstraps the back-office database, issues
development tokens, imports legacy data and exports collections.

Connection settings come from the same environment (.env) as the API server.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		seedCmd(),
		adminCmd(),
		tokenCmd(),
		importCmd(),
		exportCmd(),
	)
	return cmd
}

func mongoOptions(cfg *config.Config) services.MongoOptions {
	return services.MongoOptions{
		URI:          cfg.MongoURI,
		Database:     cfg.MongoDatabase,
		ForceTLS12:   cfg.MongoForceTLS12,
		Transactions: cfg.MongoTransactions,
	}
}

// openStore connects to MongoDB. The returned func disconnects.
func openStore(ctx context.Context, cfg *config.Config) (*services.Store, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	store, disconnect, err := services.OpenMongoStore(connectCtx, mongoOptions(cfg))
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = disconnect(context.Background()) }, nil
}
