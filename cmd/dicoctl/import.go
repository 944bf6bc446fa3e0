package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dicoslang/backoffice/internal/config"
	"github.com/dicoslang/backoffice/internal/importer"
	appMiddleware "github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import legacy or bulk data",
	}
	cmd.AddCommand(importFirestoreCmd(), importWordsCmd())
	return cmd
}

func importFirestoreCmd() *cobra.Command {
	var collections []string

	cmd := &cobra.Command{
		Use:   "firestore",
		Short: "Copy the legacy Firestore collections into MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			app, err := appMiddleware.NewFirebaseApp(ctx, appMiddleware.FirebaseAuthConfig{
				ProjectID:       cfg.FirebaseProjectID,
				CredentialsFile: cfg.FirebaseCredentialsFile,
				CredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
			})
			if err != nil {
				return err
			}
			source, err := app.Firestore(ctx)
			if err != nil {
				return fmt.Errorf("firestore client: %w", err)
			}
			defer source.Close()

			connectCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
			client, err := services.ConnectMongo(connectCtx, mongoOptions(cfg))
			cancel()
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())

			im := importer.NewFirestoreImporter(source, client.Database(cfg.MongoDatabase))
			if len(collections) > 0 {
				im.Collections = collections
			}
			counts, err := im.Run(ctx)
			for _, name := range im.Collections {
				if n, ok := counts[name]; ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", name, n)
				}
			}
			return err
		},
	}

	cmd.Flags().StringSliceVar(&collections, "collections", nil, "Collections to import (default all)")
	return cmd
}

func importWordsCmd() *cobra.Command {
	importCfg := importer.DefaultWordImportConfig()
	var status string

	cmd := &cobra.Command{
		Use:   "words",
		Short: "Import words from an .xlsx spreadsheet",
		Long: `Import words from an .xlsx spreadsheet. By default column A holds the
word, B the definition, C an example, D the origin and E comma separated tags.
The first row is treated as a header.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			importCfg.Status = models.WordStatus(status)
			if !importCfg.Status.Valid() {
				return fmt.Errorf("unknown status %q", status)
			}

			ctx := cmd.Context()
			store, closeStore, err := openStore(ctx, config.Load())
			if err != nil {
				return err
			}
			defer closeStore()

			result, err := importer.ImportWords(ctx, store.Words, importCfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "processed=%d created=%d updated=%d skipped=%d errors=%d\n",
				result.TotalProcessed, result.Created, result.Updated, result.Skipped, len(result.Errors))
			for _, e := range result.Errors {
				fmt.Fprintln(out, "  "+e)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&importCfg.FilePath, "file", "f", "", "Spreadsheet (.xlsx)")
	cmd.Flags().StringVar(&importCfg.SheetName, "sheet", "", "Sheet name (default first sheet)")
	cmd.Flags().IntVar(&importCfg.StartRow, "start-row", importCfg.StartRow, "First data row, 1-based")
	cmd.Flags().StringVar(&status, "status", string(models.WordStatusPending), "Status given to new words")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
