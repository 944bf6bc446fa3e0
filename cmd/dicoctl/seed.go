package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dicoslang/backoffice/internal/config"
	"github.com/dicoslang/backoffice/internal/importer"
)

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, words, suggestions and comments from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := importer.LoadSeed(file)
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(cmd.Context(), config.Load())
			if err != nil {
				return err
			}
			defer closeStore()

			result, err := importer.ApplySeed(cmd.Context(), store, seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded users=%d words=%d suggestions=%d comments=%d skipped=%d\n",
				result.Users, result.Words, result.Suggestions, result.Comments, result.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "Seed file (YAML)")
	return cmd
}
