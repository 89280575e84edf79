package app

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"tee-factory/config"
	"tee-factory/service"
)

func newSeedCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-collections",
		Short: "Create the smart collections on Shopify and record their IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg := config.Load()
			if err := cfg.RequireShopify(); err != nil {
				return err
			}

			collections, err := config.LoadCollections(cfg.CollectionsFile)
			if err != nil {
				return err
			}

			shopify := service.NewShopifyService(cfg.ShopifyAccessToken, cfg.ShopifyAPIBase())
			seeded, count, seedErr := shopify.SeedCollections(ctx, collections)

			// Persist whatever was created before a failure so a re-run
			// does not duplicate collections.
			if count > 0 {
				if err := config.SaveCollections(cfg.CollectionsFile, seeded); err != nil {
					return err
				}
			}
			if seedErr != nil {
				return seedErr
			}

			log.Printf("🎉 Seeded %d new collection(s), %d total", count, len(seeded))
			return nil
		},
	}
	return cmd
}
