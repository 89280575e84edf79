package app

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the tee-factory CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tee-factory",
		Short:         "AI t-shirt pipeline: generate designs, upload to Printful and Shopify",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newUploadCommand())
	cmd.AddCommand(newCheckAuthCommand())
	cmd.AddCommand(newSeedCollectionsCommand())
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newGalleryCommand())
	return cmd
}
