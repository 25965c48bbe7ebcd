package cmd

import (
	"log/slog"

	"newsreel/internal/app"

	"github.com/spf13/cobra"
)

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Synthesize narration and calibrated subtitles for a batch",
	Long: `Read the batch's digest, synthesize each section, and write the
master audio track, the subtitle file, and the story timeline.`,
	RunE: runNarrate,
}

func init() {
	rootCmd.AddCommand(narrateCmd)
}

func runNarrate(cmd *cobra.Command, args []string) error {
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

	result, err := app.NewPipeline(service).Narrate(ctx, batch)
	if err != nil {
		return err
	}

	slog.Info("Narration complete",
		"audio", result.AudioPath,
		"subtitles", result.SubtitlePath,
		"timeline", result.TimelinePath,
		"sections", result.Sections,
		"skipped", result.Skipped,
	)
	return nil
}
