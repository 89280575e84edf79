package app

import (
	"context"

	"github.com/spf13/cobra"

	"tee-factory/config"
	"tee-factory/repository"
	"tee-factory/service"
)

func newGalleryCommand() *cobra.Command {
	var (
		pdf      bool
		out      string
		imageDir string
	)

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Render an HTML or PDF gallery of every tracked design",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg := config.Load()

			tracker, err := repository.LoadUploadTracker(cfg.TrackerFile)
			if err != nil {
				return err
			}
			collections, err := config.LoadCollections(cfg.CollectionsFile)
			if err != nil {
				return err
			}

			gallery := service.NewGalleryService(tracker, collections, imageDir)
			if pdf {
				if out == "" {
					out = "gallery.pdf"
				}
				return gallery.GeneratePDF(ctx, out)
			}
			if out == "" {
				out = "gallery.html"
			}
			return gallery.WriteHTML(out)
		},
	}

	cmd.Flags().BoolVar(&pdf, "pdf", false, "Render a PDF snapshot instead of HTML")
	cmd.Flags().StringVar(&out, "out", "", "Output path (defaults to gallery.html or gallery.pdf)")
	cmd.Flags().StringVar(&imageDir, "image-dir", "designs", "Directory holding the local design images")
	return cmd
}
