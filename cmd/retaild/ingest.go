package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartretail/assistant/config"
	"github.com/smartretail/assistant/internal/ingest"
	"github.com/smartretail/assistant/internal/store"
	"github.com/smartretail/assistant/provider"
)

func ingestCMD() *cobra.Command {
	var csvPath string
	var limit int
	var cfgPath string

	var cmd = &cobra.Command{
		Use:   "ingest",
		Short: "Load a product catalog CSV into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" {
				return fmt.Errorf("--csv is required")
			}
			cfg := config.LoadConfig(cfgPath)

			ctx := context.Background()
			dsn, err := cfg.Databases.Postgres.DSN()
			if err != nil {
				return err
			}
			st, err := store.NewWithDSN(ctx, dsn)
			if err != nil {
				return err
			}
			defer st.Close()

			llm, err := provider.NewProvider(cfg.Providers.OpenAI)
			if err != nil {
				return err
			}

			ing := ingest.NewIngester(st, llm, nil)
			n, err := ing.IngestCSV(ctx, csvPath, limit)
			if err != nil {
				return err
			}

			total, err := st.CountProducts(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("ingested %d products (catalog now holds %d)\n", n, total)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "path to the product catalog CSV")
	cmd.Flags().IntVar(&limit, "limit", 0, "max rows to ingest (0 = all)")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return cmd
}
