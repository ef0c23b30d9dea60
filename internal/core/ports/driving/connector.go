package driving

import (
	"context"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

// ConnectorService drives the redirect-based connector flows.
// One session per connector kind may be active at a time; beginning a
// flow while one is active is a no-op (domain.ErrConnectorBusy).
type ConnectorService interface {
	// Phase reports the current lifecycle phase for kind.
	Phase(kind domain.ConnectorKind) domain.ConnectorPhase

	// ConnectDrive runs the full cloud-storage flow: fetch the
	// delegated token, open the external picker and persist the
	// selection. Returns the imported entries for optimistic display.
	// When the token endpoint signals no grant the browser is handed
	// to the identity provider and domain.ErrAuthRedirect is returned.
	// A dismissed picker returns domain.ErrUserCancelled.
	ConnectDrive(ctx context.Context) ([]domain.KnowledgeEntry, error)

	// BeginNotion starts the workspace-notes flow up to the point the
	// local page picker should open. Same redirect semantics as
	// ConnectDrive.
	BeginNotion(ctx context.Context) error

	// ResumeNotion re-enters the notes flow after an authorization
	// redirect, directly at the picker phase.
	ResumeNotion()

	// SearchPages searches workspace pages while the notes picker is
	// open.
	SearchPages(ctx context.Context, query string) ([]domain.NotePage, error)

	// ImportPages persists the picked pages as one batch and returns
	// the imported entries for optimistic display.
	ImportPages(ctx context.Context, pages []domain.NotePage) ([]domain.KnowledgeEntry, error)

	// CancelNotion dismisses the notes picker without a selection.
	CancelNotion()
}
