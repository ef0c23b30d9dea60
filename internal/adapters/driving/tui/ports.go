// Package tui provides the interactive terminal client for chatdocs.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat sends chat turns to the assistant.
	Chat driving.ChatService

	// Corpus lists and searches the knowledge corpus.
	Corpus driving.CorpusService

	// Connector drives the redirect-based connector flows.
	Connector driving.ConnectorService

	// Resume detects a return from an authorization redirect.
	Resume driving.ResumeController
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	corpus driving.CorpusService,
	connector driving.ConnectorService,
	resume driving.ResumeController,
) *Ports {
	return &Ports{
		Chat:      chat,
		Corpus:    corpus,
		Connector: connector,
		Resume:    resume,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Corpus == nil {
		return ErrMissingCorpusService
	}
	if p.Connector == nil {
		return ErrMissingConnectorService
	}
	if p.Resume == nil {
		return ErrMissingResumeController
	}
	return nil
}
