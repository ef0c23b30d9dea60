package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

var connectCmd = &cobra.Command{
	Use:   "connect [drive|notion]",
	Short: "Import documents from an external source",
	Long: `Connects an external document source and imports a selection.

drive   Opens a browser picker over your Google Drive files.
notion  Searches your Notion workspace pages interactively.

If the backend has no authorization grant yet, your browser is opened
at the provider's consent screen. Finish there and run the same
command again; the flow resumes where it left off.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.ConnectorDrive), string(domain.ConnectorNotion)},
	RunE:      runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	if connectorService == nil {
		return errors.New("connector service not configured")
	}

	kind := domain.ConnectorKind(args[0])
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, args[0])
	}

	// Clear a pending resume marker from a previous redirect so the
	// persisted location does not keep pointing at an old flow.
	if resumeController != nil {
		if _, _, err := resumeController.Consume(); err != nil {
			return fmt.Errorf("checking resume state: %w", err)
		}
	}

	switch kind {
	case domain.ConnectorDrive:
		return runConnectDrive(cmd)
	case domain.ConnectorNotion:
		return runConnectNotion(cmd)
	}
	return nil
}

func runConnectDrive(cmd *cobra.Command) error {
	entries, err := connectorService.ConnectDrive(cmd.Context())
	if len(entries) > 0 {
		printImported(cmd, domain.ConnectorDrive, entries)
	}
	if err != nil {
		return describeConnectError(cmd, err)
	}
	return printCorpusSize(cmd)
}

func runConnectNotion(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if err := connectorService.BeginNotion(ctx); err != nil {
		return describeConnectError(cmd, err)
	}

	reader := bufio.NewReader(os.Stdin)
	pages, err := searchNotionPages(ctx, cmd, reader)
	if err != nil {
		connectorService.CancelNotion()
		return err
	}
	if len(pages) == 0 {
		connectorService.CancelNotion()
		cmd.Println("Nothing selected.")
		return nil
	}

	entries, err := connectorService.ImportPages(ctx, pages)
	if len(entries) > 0 {
		printImported(cmd, domain.ConnectorNotion, entries)
	}
	if err != nil {
		return describeConnectError(cmd, err)
	}
	return printCorpusSize(cmd)
}

// searchNotionPages runs the interactive query/select loop and returns
// the chosen pages.
func searchNotionPages(ctx context.Context, cmd *cobra.Command, reader *bufio.Reader) ([]domain.NotePage, error) {
	cmd.Print("Search pages (empty lists everything): ")
	query := readLine(reader)

	pages, err := connectorService.SearchPages(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching pages: %w", err)
	}
	if len(pages) == 0 {
		cmd.Println("No pages found.")
		return nil, nil
	}

	for i, p := range pages {
		cmd.Printf("  [%d] %s\n", i+1, p.Title)
	}
	cmd.Print("Pages to import (e.g. 1,3), empty to cancel: ")
	input := readLine(reader)
	if input == "" {
		return nil, nil
	}

	var picked []domain.NotePage
	for _, tok := range strings.Split(input, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n < 1 || n > len(pages) {
			return nil, fmt.Errorf("%w: invalid selection %q", domain.ErrInvalidInput, tok)
		}
		picked = append(picked, pages[n-1])
	}
	return picked, nil
}

func printImported(cmd *cobra.Command, kind domain.ConnectorKind, entries []domain.KnowledgeEntry) {
	ok := color.New(color.FgGreen)
	cmd.Printf("%s\n", ok.Sprintf("Imported %d from %s:", len(entries), kind.Label()))
	for _, e := range entries {
		cmd.Printf("  - %s\n", e.Name)
	}
}

func printCorpusSize(cmd *cobra.Command) error {
	if corpusService == nil {
		return nil
	}
	entries, err := listCorpus(cmd.Context())
	if err != nil {
		// The import itself succeeded; the refresh is best effort.
		return nil
	}
	cmd.Printf("Corpus now holds %d documents.\n", len(entries))
	return nil
}

// describeConnectError maps flow outcomes to user-facing results.
func describeConnectError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, domain.ErrAuthRedirect):
		cmd.Println("Authorization needed: finish connecting in your browser, then run this command again.")
		return nil
	case errors.Is(err, domain.ErrUserCancelled):
		cmd.Println("Selection cancelled.")
		return nil
	case errors.Is(err, domain.ErrConnectorBusy):
		return errors.New("a connector flow is already running")
	case errors.Is(err, domain.ErrEmptyCredential):
		return errors.New("the backend returned an empty token; reconnect the provider")
	default:
		return fmt.Errorf("connect failed: %w", err)
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
