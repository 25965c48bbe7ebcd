package cmd

import (
	"log/slog"

	"newsreel/internal/app"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a batch's video to YouTube",
	RunE:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
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

	response, err := app.NewPipeline(service).Upload(ctx, batch)
	if err != nil {
		return err
	}

	slog.Info("Upload complete", "url", response.URL)
	return nil
}
