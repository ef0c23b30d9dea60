// Package cli provides the command-line interface for chatdocs.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected driving ports. Commands fail cleanly when a required
// service was not wired.
var (
	chatService      driving.ChatService
	corpusService    driving.CorpusService
	connectorService driving.ConnectorService
	resumeController driving.ResumeController
)

// Services aggregates the driving ports the CLI needs.
type Services struct {
	Chat      driving.ChatService
	Corpus    driving.CorpusService
	Connector driving.ConnectorService
	Resume    driving.ResumeController
}

// SetServices injects the core services into the CLI commands.
func SetServices(s Services) {
	chatService = s.Chat
	corpusService = s.Corpus
	connectorService = s.Connector
	resumeController = s.Resume
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "chatdocs",
	Short: "Chat with your documents from the terminal",
	Long: `chatdocs is a terminal client for a document-grounded chat backend.

Ask questions against your ingested documents, browse and search the
knowledge corpus, and connect Google Drive or Notion as document
sources.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	// Bare invocation opens the interactive workspace.
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
