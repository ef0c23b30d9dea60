package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/watch"
)

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Upload local documents to the corpus",
	Long: `Uploads local documents to the corpus for indexing.

With --watch a single directory argument is expected; files dropped
into it are uploaded as they appear until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "watch a directory and ingest new files")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	if ingestWatch {
		return runIngestWatch(cmd, args)
	}

	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := corpusService.Ingest(cmd.Context(), path); err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		cmd.Printf("Ingested %s\n", path)
	}
	return nil
}

func runIngestWatch(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("--watch expects exactly one directory")
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", args[0])
	}

	cmd.Printf("Watching %s (ctrl+c to stop)\n", args[0])
	w := watch.NewWatcher(corpusService, args[0])
	return w.Run(cmd.Context())
}
