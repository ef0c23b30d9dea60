package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/views/corpus"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/views/notespicker"
	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

// focusedPane identifies which workspace pane holds keyboard focus.
type focusedPane int

const (
	paneChat focusedPane = iota
	paneCorpus
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the active keybindings.
	keymap *keymap.KeyMap

	// chatView is the chat pane.
	chatView *chat.View

	// corpusView is the corpus browser pane.
	corpusView *corpus.View

	// pickerView is the workspace-notes page picker.
	pickerView *notespicker.View

	// statusbar is the shared bottom status bar.
	statusbar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// focused tracks which workspace pane has keyboard focus.
	focused focusedPane

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		chatView:    chat.NewView(s, ports.Chat),
		corpusView:  corpus.NewView(s, ports.Corpus),
		pickerView:  notespicker.NewView(s, ports.Connector),
		statusbar:   status.NewBar(s, km),
		currentView: messages.ViewWorkspace,
		focused:     paneChat,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.corpusView.WithContext(ctx)
	a.pickerView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// The resume probe runs before anything else so a launch that returned
// from an authorization redirect continues the interrupted flow.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("chatdocs"),
		a.checkResume(),
		a.chatView.Init(),
		a.corpusView.Init(),
	)
}

// checkResume consumes the launch URL's resume marker, if any.
func (a *App) checkResume() tea.Cmd {
	return func() tea.Msg {
		kind, found, err := a.ports.Resume.Consume()
		return messages.ResumeChecked{Kind: kind, Found: found, Err: err}
	}
}

// connectDrive runs the cloud-storage flow off the event loop.
func (a *App) connectDrive() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.ports.Connector.ConnectDrive(a.ctx)
		return messages.DriveConnectFinished{Entries: entries, Err: err}
	}
}

// beginNotes starts the workspace-notes flow up to the picker phase.
func (a *App) beginNotes() tea.Cmd {
	return func() tea.Msg {
		return messages.NotesFlowStarted{Err: a.ports.Connector.BeginNotion(a.ctx)}
	}
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		paneWidth := msg.Width/2 - 2
		a.chatView.SetDimensions(paneWidth, msg.Height-2)
		a.corpusView.SetDimensions(paneWidth, msg.Height-2)
		a.pickerView.SetDimensions(msg.Width-8, msg.Height-4)
		a.statusbar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ResumeChecked:
		return a.handleResumeChecked(msg)

	case messages.ChatReplyReceived:
		// Send failures surface only as the conversational assistant
		// reply inside the transcript, never on the status line.
		a.chatView, cmd = a.chatView.Update(msg)
		a.statusbar.Clear()
		return a, cmd

	case messages.SearchDebounceElapsed, messages.CorpusLoaded:
		// The corpus view owns these even while the picker is up: a
		// timer armed before opening it still completes behind it.
		a.corpusView, cmd = a.corpusView.Update(msg)
		return a, cmd

	case messages.NotesSearchDebounceElapsed, messages.NotesPagesLoaded:
		a.pickerView, cmd = a.pickerView.Update(msg)
		return a, cmd

	case messages.DriveConnectFinished:
		return a.handleDriveFinished(msg)

	case messages.NotesFlowStarted:
		return a.handleNotesStarted(msg)

	case messages.NotesImportFinished:
		return a.handleNotesImported(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		a.statusbar.SetPickerHints(msg.View == messages.ViewNotesPicker)
		return a, nil

	case messages.NoticePosted:
		a.notice(msg.Text)
		return a, nil

	case messages.ErrorOccurred:
		a.statusbar.SetState(status.StateError)
		a.statusbar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view.
	switch a.currentView {
	case messages.ViewWorkspace:
		if a.focused == paneChat {
			a.chatView, cmd = a.chatView.Update(msg)
		} else {
			a.corpusView, cmd = a.corpusView.Update(msg)
		}
	case messages.ViewNotesPicker:
		a.pickerView, cmd = a.pickerView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't handle other messages
	}

	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keymap.Matches(msg.String(), a.keymap.Quit) {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewWorkspace
		}
		return a, nil

	case messages.ViewNotesPicker:
		a.pickerView, cmd = a.pickerView.Update(msg)
		return a, cmd

	case messages.ViewWorkspace:
	}

	switch {
	case keymap.Matches(msg.String(), a.keymap.Help):
		a.currentView = messages.ViewHelp
		return a, nil

	case keymap.Matches(msg.String(), a.keymap.SwitchPane):
		a.switchPane()
		return a, nil

	case keymap.Matches(msg.String(), a.keymap.ConnectDrive):
		a.statusbar.SetState(status.StateImporting)
		return a, a.connectDrive()

	case keymap.Matches(msg.String(), a.keymap.ConnectNotes):
		return a, a.beginNotes()
	}

	if a.focused == paneChat {
		a.chatView, cmd = a.chatView.Update(msg)
	} else {
		a.corpusView, cmd = a.corpusView.Update(msg)
	}
	return a, cmd
}

func (a *App) switchPane() {
	if a.focused == paneChat {
		a.focused = paneCorpus
		a.chatView.Blur()
		a.corpusView.Focus()
	} else {
		a.focused = paneChat
		a.corpusView.Blur()
		a.chatView.Focus()
	}
}

// handleResumeChecked continues a flow interrupted by an authorization
// redirect on the previous launch.
func (a *App) handleResumeChecked(msg messages.ResumeChecked) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.notice(msg.Err.Error())
		return a, nil
	}
	if !msg.Found {
		return a, nil
	}

	switch msg.Kind {
	case domain.ConnectorDrive:
		// The grant now exists; rerun the flow from the top.
		a.statusbar.SetState(status.StateImporting)
		return a, a.connectDrive()
	case domain.ConnectorNotion:
		a.ports.Connector.ResumeNotion()
		a.currentView = messages.ViewNotesPicker
		a.statusbar.SetPickerHints(true)
		return a, a.pickerView.Init()
	}
	return a, nil
}

func (a *App) handleDriveFinished(msg messages.DriveConnectFinished) (tea.Model, tea.Cmd) {
	// Imported entries stay visible regardless of how the flow ended.
	if len(msg.Entries) > 0 {
		a.corpusView.AppendImported(domain.ConnectorDrive.Label(), msg.Entries)
	}
	if msg.Err != nil {
		a.notice(describeError(msg.Err))
		return a, nil
	}
	a.notice(fmt.Sprintf("Imported %d Drive files", len(msg.Entries)))
	return a, a.corpusView.Refresh()
}

func (a *App) handleNotesStarted(msg messages.NotesFlowStarted) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.notice(describeError(msg.Err))
		return a, nil
	}
	a.currentView = messages.ViewNotesPicker
	a.statusbar.SetPickerHints(true)
	return a, a.pickerView.Init()
}

func (a *App) handleNotesImported(msg messages.NotesImportFinished) (tea.Model, tea.Cmd) {
	a.pickerView, _ = a.pickerView.Update(msg)
	if msg.Err != nil {
		a.notice(describeError(msg.Err))
		return a, nil
	}

	a.corpusView.AppendImported(domain.ConnectorNotion.Label(), msg.Entries)
	a.currentView = messages.ViewWorkspace
	a.statusbar.SetPickerHints(false)
	a.notice(fmt.Sprintf("Imported %d Notion pages", len(msg.Entries)))
	return a, a.corpusView.Refresh()
}

// notice posts a transient status-line message.
func (a *App) notice(text string) {
	a.statusbar.SetState(status.StateNotice)
	a.statusbar.SetMessage(text)
}

// describeError renders connector and transport errors as user-facing
// notices.
func describeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthRedirect):
		return "Authorization needed: finish connecting in your browser, then relaunch"
	case errors.Is(err, domain.ErrUserCancelled):
		return "Selection cancelled"
	case errors.Is(err, domain.ErrConnectorBusy):
		return "A connector flow is already running"
	case errors.Is(err, domain.ErrEmptyCredential):
		return "The backend returned an empty token; reconnect the provider"
	case errors.Is(err, domain.ErrNetworkUnavailable):
		return "Network unavailable"
	default:
		return err.Error()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewNotesPicker:
		return lipgloss.JoinVertical(lipgloss.Left, a.pickerView.View(), a.statusbar.View())
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewWorkspace:
	}

	chatPane := a.paneStyle(paneChat).Render(a.chatView.View())
	corpusPane := a.paneStyle(paneCorpus).Render(a.corpusView.View())
	workspace := lipgloss.JoinHorizontal(lipgloss.Top, chatPane, corpusPane)
	return lipgloss.JoinVertical(lipgloss.Left, workspace, a.statusbar.View())
}

func (a *App) paneStyle(pane focusedPane) lipgloss.Style {
	width := a.width/2 - 2
	if a.focused == pane {
		return a.styles.FocusedBorder.Width(width)
	}
	return a.styles.Border.Width(width)
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Workspace:
  tab         Switch between chat and corpus panes
  enter       Send message (chat) / move selection (corpus)
  ↑/↓         Navigate the document list
  ctrl+d      Connect Google Drive
  ctrl+n      Connect Notion
  ctrl+c      Quit

Notion picker:
  (type)      Search workspace pages
  tab         Switch between search box and page list
  space       Mark or unmark a page
  enter       Import marked pages
  esc         Cancel

[esc] back to workspace`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// ChatView returns the chat pane.
func (a *App) ChatView() *chat.View {
	return a.chatView
}

// CorpusView returns the corpus pane.
func (a *App) CorpusView() *corpus.View {
	return a.corpusView
}

// PickerView returns the notes picker.
func (a *App) PickerView() *notespicker.View {
	return a.pickerView
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	paneWidth := width/2 - 2
	a.chatView.SetDimensions(paneWidth, height-2)
	a.corpusView.SetDimensions(paneWidth, height-2)
	a.pickerView.SetDimensions(width-8, height-4)
	a.statusbar.SetWidth(width)
}
