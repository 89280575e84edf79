package app

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"tee-factory/config"
)

func newCheckAuthCommand() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "check-auth",
		Short: "Verify platform credentials without uploading anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg := config.Load()

			adapters, err := buildAdapters(ctx, cfg, platform)
			if err != nil {
				return err
			}

			var failed int
			for _, adapter := range adapters {
				log.Printf("🔐 Checking %s credentials...", adapter.Name())
				if err := adapter.CheckAuth(ctx); err != nil {
					log.Printf("❌ %s: %v", adapter.Name(), err)
					failed++
					continue
				}
				log.Printf("✅ %s credentials are valid", adapter.Name())
			}

			if failed > 0 {
				return fmt.Errorf("%d platform(s) failed the credential check", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "all", "Target platform: all, printful or shopify")
	return cmd
}
