package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"newsreel/internal/app"
	"newsreel/internal/storage"
	"newsreel/pkg/config"

	"github.com/spf13/cobra"
)

var (
	verbose   bool
	batchDate string
)

var rootCmd = &cobra.Command{
	Use:   "newsreel",
	Short: "Generate and publish narrated gaming news videos",
	Long: `Newsreel turns daily gaming news notes into a finished video: a
model-written digest, synthesized narration with calibrated subtitles,
rendered news-page slides, and an mp4 ready for YouTube.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&batchDate, "date", "d", "", "Batch date (YYYYMMDD), defaults to the latest batch")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger()
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func loadService(ctx context.Context) (*app.Service, error) {
	return app.BuildService(ctx, config.Load())
}

// resolveBatch picks the batch a stage command operates on: the --date
// flag when given, otherwise the newest batch under the output root.
func resolveBatch(cfg *config.Config) (*storage.Batch, error) {
	if batchDate != "" {
		batch := storage.NewBatch(cfg.Video.OutputDir, batchDate)
		if _, err := os.Stat(batch.Dir()); err != nil {
			return nil, fmt.Errorf("no batch for %s under %s", batchDate, cfg.Video.OutputDir)
		}
		return batch, nil
	}
	return storage.LatestBatch(cfg.Video.OutputDir)
}
