// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewWorkspace is the main chat + corpus split view.
	ViewWorkspace ViewType = iota
	// ViewNotesPicker is the workspace-notes page picker overlay.
	ViewNotesPicker
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewWorkspace:
		return "workspace"
	case ViewNotesPicker:
		return "notes_picker"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ChatReplyReceived carries the assistant's reply for the in-flight
// chat turn back to the model.
type ChatReplyReceived struct {
	Reply string
	Err   error
}

// SearchDebounceElapsed fires when the corpus search debounce window
// closes. Generation identifies the keystroke burst that armed it;
// stale timers are discarded by comparing against the current one.
type SearchDebounceElapsed struct {
	Generation int
}

// NotesSearchDebounceElapsed fires when the notes picker's search
// debounce window closes. The picker keeps its own generation counter,
// so its timers carry a distinct type and never collide with the
// corpus filter's.
type NotesSearchDebounceElapsed struct {
	Generation int
}

// CorpusLoaded carries a corpus listing or search result. Generation
// identifies the fetch; responses from superseded fetches are dropped.
type CorpusLoaded struct {
	Generation int
	Entries    []domain.KnowledgeEntry
	Err        error
}

// DriveConnectFinished signals the cloud-storage connect flow ended.
// Entries may be non-empty alongside an error: imported files stay
// visible even when the import call itself failed partway.
type DriveConnectFinished struct {
	Entries []domain.KnowledgeEntry
	Err     error
}

// NotesFlowStarted signals the workspace-notes flow reached (or failed
// to reach) the page picker.
type NotesFlowStarted struct {
	Err error
}

// NotesPagesLoaded carries a page search result for the notes picker.
// Same generation discipline as CorpusLoaded.
type NotesPagesLoaded struct {
	Generation int
	Pages      []domain.NotePage
	Err        error
}

// NotesImportFinished signals the picked pages were imported.
type NotesImportFinished struct {
	Entries []domain.KnowledgeEntry
	Err     error
}

// ResumeChecked carries the result of the launch-time resume probe.
type ResumeChecked struct {
	Kind  domain.ConnectorKind
	Found bool
	Err   error
}

// NoticePosted surfaces a transient status-line notice.
type NoticePosted struct {
	Text string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
