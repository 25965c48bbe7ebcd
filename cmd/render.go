package cmd

import (
	"log/slog"

	"newsreel/internal/app"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render news pages and capture slide images for a batch",
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()

	batch, err := resolveBatch(service.Config())
	if err != nil {
		return err
	}

	if err := app.NewPipeline(service).RenderPages(ctx, batch); err != nil {
		return err
	}

	slog.Info("Slides rendered", "images", batch.ImagesDir())
	return nil
}
