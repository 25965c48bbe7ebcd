package cmd

import (
	"log/slog"

	"newsreel/internal/app"

	"github.com/spf13/cobra"
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Compose the final video for a batch",
	Long: `Plan the slideshow from the batch's timeline, reconcile it against
the measured narration length, and render the mp4 with burned-in
subtitles.`,
	RunE: runVideo,
}

func init() {
	rootCmd.AddCommand(videoCmd)
}

func runVideo(cmd *cobra.Command, args []string) error {
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

	if err := app.NewPipeline(service).ComposeVideo(ctx, batch); err != nil {
		return err
	}

	slog.Info("Video composed", "path", batch.VideoPath())
	return nil
}
