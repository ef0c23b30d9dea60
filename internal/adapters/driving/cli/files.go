package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

var filesJSON bool

var filesCmd = &cobra.Command{
	Use:   "files [query]",
	Short: "List or search corpus documents",
	Long: `Lists the documents in your corpus. With a query argument the
corpus is searched semantically and results are ordered by vector
distance, closest first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().BoolVar(&filesJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	var (
		entries []domain.KnowledgeEntry
		err     error
	)
	ctx := cmd.Context()
	if len(args) == 1 && args[0] != "" {
		entries, err = corpusService.Search(ctx, args[0])
	} else {
		entries, err = corpusService.List(ctx)
	}
	if err != nil {
		return fmt.Errorf("listing corpus: %w", err)
	}

	if filesJSON {
		return outputFilesJSON(cmd, entries)
	}
	return outputFilesTable(cmd, entries)
}

// fileRow is the JSON output shape for one corpus document.
type fileRow struct {
	Name     string   `json:"name"`
	Chunks   int      `json:"chunks"`
	Distance *float64 `json:"distance,omitempty"`
}

func outputFilesJSON(cmd *cobra.Command, entries []domain.KnowledgeEntry) error {
	rows := make([]fileRow, 0, len(entries))
	for _, e := range entries {
		row := fileRow{Name: e.Name, Chunks: e.Chunks}
		if e.HasDistance {
			d := e.Distance
			row.Distance = &d
		}
		rows = append(rows, row)
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFilesTable(cmd *cobra.Command, entries []domain.KnowledgeEntry) error {
	if len(entries) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	name := color.New(color.FgCyan)
	muted := color.New(color.Faint)

	cmd.Printf("Documents (%d):\n\n", len(entries))
	for i, e := range entries {
		cmd.Printf("  [%d] %s", i+1, name.Sprint(e.Name))
		if e.HasDistance {
			cmd.Printf("  %s", muted.Sprintf("(distance %.3f)", e.Distance))
		} else if e.Chunks > 0 {
			cmd.Printf("  %s", muted.Sprintf("(%d chunks)", e.Chunks))
		}
		cmd.Println()
	}
	return nil
}

// listCorpus is shared by commands needing a refresh after imports.
func listCorpus(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	return corpusService.List(ctx)
}
