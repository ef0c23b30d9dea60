package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driven/browser"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driven/picker"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driven/statefile"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/chatdocs-cli/internal/config"
	"github.com/custodia-labs/chatdocs-cli/internal/core/services"
)

// version is overridden at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	client, err := api.NewClient(cfg.BaseURL, cfg.SessionCookie)
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	nav := statefile.NewNavigator(cfg.StateDir, cfg.BaseURL, browser.Open)
	drivePicker := picker.NewDrivePicker(browser.Open)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Chat:      services.NewChatService(client),
		Corpus:    services.NewCorpusService(client),
		Connector: services.NewConnectorService(client, nav, drivePicker),
		Resume:    services.NewResumeService(nav),
	})

	return cli.Execute()
}
