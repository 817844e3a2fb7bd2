package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/catpoint/internal/detector"
	"github.com/oshokin/catpoint/internal/service/security"
	"github.com/oshokin/catpoint/internal/service/system"
)

func newImageCommand() *cobra.Command {
	var cat bool

	image := &cobra.Command{
		Use:   "image <path>",
		Short: "Scan a camera image (PNG, JPEG or GIF) for the cat.",
		Long: `Scan a camera image for the cat.

Without --cat the image is classified by a randomised detector that honours
the configured confidence threshold. With --cat=true or --cat=false the
detector answer is fixed, which is useful for drills.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var catDetector security.CatDetector
			if cmd.Flags().Changed("cat") {
				catDetector = detector.Static{Result: cat}
			}

			return runWithSystem(cmd, catDetector, func(ctx context.Context, sys *system.System) error {
				if err := sys.ProcessImageFile(ctx, args[0]); err != nil {
					return fmt.Errorf("process image: %w", err)
				}

				return printStatus(ctx, cmd.OutOrStdout(), sys)
			})
		},
	}

	image.Flags().BoolVar(&cat, "cat", false, "fix the detector answer instead of guessing")

	return image
}
