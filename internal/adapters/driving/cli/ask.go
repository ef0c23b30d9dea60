package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a question about your documents",
	Long: `Sends one question to the assistant and prints the reply.

The assistant answers using the documents currently in your corpus.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if !domain.ValidPrompt(question) {
		return fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	reply, err := chatService.Send(cmd.Context(), question)
	if err != nil {
		if errors.Is(err, domain.ErrNetworkUnavailable) {
			return fmt.Errorf("backend unreachable: %w", err)
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Printf("%s %s\n", color.New(color.FgMagenta, color.Bold).Sprint("assistant:"), reply)
	return nil
}
