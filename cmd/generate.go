package cmd

import (
	"log/slog"

	"newsreel/internal/app"

	"github.com/spf13/cobra"
)

var generateNotesPath string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's digest from raw news notes",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateNotesPath, "notes", "n", "-", "Path to the raw news notes, \"-\" for stdin")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	news, err := readNotes(generateNotesPath)
	if err != nil {
		return err
	}

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()

	batch, err := app.NewPipeline(service).GenerateDigest(ctx, news)
	if err != nil {
		return err
	}

	slog.Info("Digest written", "path", batch.DigestPath())
	return nil
}
