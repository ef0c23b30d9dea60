package driving

import "github.com/custodia-labs/chatdocs-cli/internal/core/domain"

// ResumeController detects a return from an authorization redirect.
// It is the only bridge between the pre-redirect and post-redirect
// client instances; everything except the resume marker is discarded.
type ResumeController interface {
	// Consume inspects the launch URL exactly once. If a resume marker
	// is present it is stripped from the persisted URL (no new history
	// entry) and the connector to resume is returned. Subsequent calls
	// report nothing to resume.
	Consume() (domain.ConnectorKind, bool, error)
}
