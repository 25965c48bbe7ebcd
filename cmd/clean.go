package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"newsreel/pkg/config"

	"github.com/spf13/cobra"
)

var cleanAll bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove scratch files left behind by batches",
	Long: `Delete the tmp/ scratch directory of the selected batch. With
--all, every batch under the output root is cleaned.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanAll, "all", "a", false, "Clean every batch, not just the selected one")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if !cleanAll {
		batch, err := resolveBatch(cfg)
		if err != nil {
			return err
		}
		batch.RemoveScratch()
		fmt.Printf("Cleaned %s\n", batch.Dir())
		return nil
	}

	scratch, err := filepath.Glob(filepath.Join(cfg.Video.OutputDir, "*", "tmp"))
	if err != nil {
		return err
	}
	sort.Strings(scratch)
	for _, dir := range scratch {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove %s: %w", dir, err)
		}
		fmt.Printf("Cleaned %s\n", filepath.Dir(dir))
	}
	return nil
}
