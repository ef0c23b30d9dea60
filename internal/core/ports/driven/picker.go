package driven

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

// FilePicker is the externally-owned cloud-storage picker widget. The
// core never depends on the widget's internals, only this contract:
// run the picker with the delegated token and resolve with the
// selection, or with domain.ErrUserCancelled when dismissed.
type FilePicker interface {
	// Pick shows the picker and blocks until the user confirms or
	// dismisses it.
	Pick(ctx context.Context, token *oauth2.Token) ([]domain.PickedFile, error)
}
