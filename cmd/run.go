package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"newsreel/internal/app"

	"github.com/spf13/cobra"
)

var runNotesPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole pipeline from raw news notes",
	Long: `Generate the digest, narrate it, render the slides, compose the
video, and finish with the upload and archive stages when they are
configured. News notes come from --notes, or from stdin when the flag
is "-" or absent.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVarP(&runNotesPath, "notes", "n", "-", "Path to the raw news notes, \"-\" for stdin")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	news, err := readNotes(runNotesPath)
	if err != nil {
		return err
	}

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()

	result, err := app.NewPipeline(service).Run(ctx, news)
	if err != nil {
		return err
	}

	slog.Info("Batch complete",
		"date", result.Date,
		"video", result.VideoPath,
		"skipped_sections", result.Skipped,
	)
	return nil
}

func readNotes(path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read news notes: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("news notes are empty")
	}
	return string(data), nil
}
