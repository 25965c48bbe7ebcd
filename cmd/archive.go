package cmd

import (
	"fmt"
	"log/slog"

	"newsreel/internal/app"
	"newsreel/internal/storage"

	"github.com/spf13/cobra"
)

var archiveList bool

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Mirror a batch's artifacts to Cloud Storage",
	RunE:  runArchive,
}

func init() {
	archiveCmd.Flags().BoolVarP(&archiveList, "list", "l", false, "List archived batches instead of uploading")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	service, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()

	if archiveList {
		gcs, ok := service.Archive().(*storage.GCSArchive)
		if !ok {
			return fmt.Errorf("no archive configured, set GCS_BUCKET and enable gcs in config.yaml")
		}
		dates, err := gcs.ListBatches(ctx)
		if err != nil {
			return err
		}
		for _, date := range dates {
			fmt.Println(date)
		}
		return nil
	}

	batch, err := resolveBatch(service.Config())
	if err != nil {
		return err
	}

	if err := app.NewPipeline(service).ArchiveBatch(ctx, batch); err != nil {
		return err
	}

	slog.Info("Archive complete", "date", batch.Date())
	return nil
}
