package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/dicoslang/backoffice/internal/config"
	"github.com/dicoslang/backoffice/internal/storage"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every collection as JSON to a directory or gs://bucket/prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			var sink storage.Sink
			if _, _, ok := storage.ParseBucketURI(out); ok {
				var opts []option.ClientOption
				if creds := os.Getenv("FIREBASE_CREDENTIALS_JSON"); creds != "" {
					opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
				} else if cfg.FirebaseCredentialsFile != "" {
					opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
				}
				bucket, err := storage.NewBucketSink(ctx, out, opts...)
				if err != nil {
					return err
				}
				defer bucket.Close()
				sink = bucket
			} else {
				dir, err := storage.NewDirSink(out)
				if err != nil {
					return err
				}
				sink = dir
			}

			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			result, err := storage.Export(ctx, store, sink)
			if err != nil {
				return err
			}
			for name, n := range result.Counts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d -> %s\n", name, n, sink.Location(name))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "export", "Output directory or gs://bucket/prefix")
	return cmd
}
