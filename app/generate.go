package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"tee-factory/config"
	"tee-factory/service"
)

func newGenerateCommand() *cobra.Command {
	var (
		collection string
		count      int
		delay      time.Duration
		prompt     string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate new t-shirt designs with Imagen",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg := config.Load()
			if err := cfg.RequireGenerator(); err != nil {
				return err
			}

			collections, err := config.LoadCollections(cfg.CollectionsFile)
			if err != nil {
				return err
			}

			generator, err := service.NewGeneratorService(ctx, cfg.GeminiAPIKey, collections, outputDir)
			if err != nil {
				return err
			}

			if collection == "" {
				collection = generator.PickDailyCollection()
				log.Printf("📅 Daily rotation picked collection %s", collection)
			}

			if count > 1 {
				_, failed, err := generator.GenerateBulk(ctx, collection, count, delay)
				if err != nil {
					return err
				}
				if failed == count {
					return fmt.Errorf("all %d generations failed", count)
				}
				return nil
			}

			artifact, err := generator.GenerateDesign(ctx, collection, prompt)
			if err != nil {
				return err
			}
			log.Printf("🎉 Generated %s", artifact.Filename)
			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "Collection slug (empty picks by daily rotation)")
	cmd.Flags().IntVar(&count, "count", 1, "Number of designs to generate")
	cmd.Flags().DurationVar(&delay, "delay", 5*time.Second, "Pause between bulk generations")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Custom design prompt (overrides collection themes)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "designs", "Directory to save generated designs into")
	return cmd
}
