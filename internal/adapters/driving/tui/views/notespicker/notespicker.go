// Package notespicker provides the workspace-notes page picker view.
//
// The picker opens once the notes connector reaches its picker phase.
// Typing searches workspace pages with the same debounce-and-generation
// discipline as the corpus filter; tab moves between the search box and
// the result list, space marks pages and enter imports the marked set
// as one batch.
package notespicker

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
)

// DebounceInterval is how long typing must pause before a page search
// is issued.
const DebounceInterval = 300 * time.Millisecond

// View is the workspace-notes page picker.
type View struct {
	styles *styles.Styles
	input  *input.PromptInput

	connectorService driving.ConnectorService
	ctx              context.Context

	pages      []domain.NotePage
	marked     map[string]bool
	cursor     int
	generation int
	searching  bool
	importing  bool
	focusInput bool
	err        error

	width  int
	height int
}

// NewView creates a new notes picker view.
func NewView(s *styles.Styles, connectorService driving.ConnectorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:           s,
		input:            input.NewPromptInput(s, "Pages: ", "Search workspace pages..."),
		connectorService: connectorService,
		ctx:              context.Background(),
		marked:           map[string]bool{},
		focusInput:       true,
		width:            80,
		height:           24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init resets the picker and loads the unfiltered page list.
func (v *View) Init() tea.Cmd {
	v.Reset()
	v.searching = true
	return tea.Batch(v.input.Init(), v.search(v.generation, ""))
}

// Reset clears picker state for a fresh session.
func (v *View) Reset() {
	v.pages = nil
	v.marked = map[string]bool{}
	v.cursor = 0
	v.generation = 0
	v.searching = false
	v.importing = false
	v.focusInput = true
	v.err = nil
	v.input.SetValue("")
	v.input.Focus()
}

// Update handles messages for the picker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.NotesSearchDebounceElapsed:
		if msg.Generation != v.generation {
			return v, nil
		}
		v.searching = true
		return v, v.search(msg.Generation, v.input.Value())

	case messages.NotesPagesLoaded:
		v.handlePagesLoaded(msg)
		return v, nil

	case messages.NotesImportFinished:
		v.importing = false
		if msg.Err != nil {
			v.err = msg.Err
		}
		return v, nil
	}

	return v, nil
}

//nolint:gocognit // key dispatch for two focus modes
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.importing {
		return v, nil
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		// Dismissing the picker abandons the session without touching
		// whatever was already imported.
		v.connectorService.CancelNotion()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewWorkspace}
		}

	case tea.KeyTab:
		v.focusInput = !v.focusInput
		if v.focusInput {
			v.input.Focus()
		} else {
			v.input.Blur()
		}
		return v, nil

	case tea.KeyUp:
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case tea.KeyDown:
		if v.cursor < len(v.pages)-1 {
			v.cursor++
		}
		return v, nil

	case tea.KeyEnter:
		if v.focusInput {
			// Force an immediate search, skipping the debounce.
			v.generation++
			v.searching = true
			return v, v.search(v.generation, v.input.Value())
		}
		return v, v.importMarked()

	case tea.KeySpace:
		if !v.focusInput {
			v.toggleCursor()
			return v, nil
		}
	default:
	}

	if !v.focusInput {
		return v, nil
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == before {
		return v, cmd
	}

	v.generation++
	gen := v.generation
	debounce := tea.Tick(DebounceInterval, func(time.Time) tea.Msg {
		return messages.NotesSearchDebounceElapsed{Generation: gen}
	})
	return v, tea.Batch(cmd, debounce)
}

func (v *View) toggleCursor() {
	if v.cursor < 0 || v.cursor >= len(v.pages) {
		return
	}
	id := v.pages[v.cursor].ID
	if v.marked[id] {
		delete(v.marked, id)
	} else {
		v.marked[id] = true
	}
}

// search queries workspace pages, stamping the response with the
// requesting generation.
func (v *View) search(generation int, query string) tea.Cmd {
	return func() tea.Msg {
		pages, err := v.connectorService.SearchPages(v.ctx, query)
		return messages.NotesPagesLoaded{Generation: generation, Pages: pages, Err: err}
	}
}

func (v *View) handlePagesLoaded(msg messages.NotesPagesLoaded) {
	if msg.Generation != v.generation {
		return
	}
	v.searching = false
	if msg.Err != nil {
		v.err = msg.Err
		return
	}
	v.err = nil
	v.pages = msg.Pages
	if v.cursor >= len(v.pages) {
		v.cursor = 0
	}
}

// importMarked imports the marked pages as one batch. Marks survive
// re-searches, so the batch may span several queries.
func (v *View) importMarked() tea.Cmd {
	picked := v.MarkedPages()
	if len(picked) == 0 {
		return nil
	}
	v.importing = true

	return func() tea.Msg {
		entries, err := v.connectorService.ImportPages(v.ctx, picked)
		return messages.NotesImportFinished{Entries: entries, Err: err}
	}
}

// MarkedPages returns the currently marked pages in list order.
func (v *View) MarkedPages() []domain.NotePage {
	picked := make([]domain.NotePage, 0, len(v.marked))
	for _, p := range v.pages {
		if v.marked[p.ID] {
			picked = append(picked, p)
		}
	}
	return picked
}

// View renders the picker.
func (v *View) View() string {
	sections := make([]string, 0, 8)

	sections = append(sections, v.styles.Title.Render("Import Notion pages"), "")
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	switch {
	case v.importing:
		sections = append(sections, v.styles.Muted.Render("Importing..."), "")
	case v.searching:
		sections = append(sections, v.styles.Muted.Render("Searching..."), "")
	}

	sections = append(sections, v.renderPages())
	sections = append(sections, "", v.styles.Help.Render(
		"tab: focus list | space: mark | enter: import | esc: cancel"))

	return v.styles.Border.Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (v *View) renderPages() string {
	if len(v.pages) == 0 {
		return v.styles.Muted.Render("No pages")
	}

	lines := make([]string, 0, len(v.pages))
	for i, p := range v.pages {
		indicator := "  "
		if i == v.cursor && !v.focusInput {
			indicator = "> "
		}
		mark := "[ ]"
		if v.marked[p.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", indicator, mark, p.Title)
		if i == v.cursor && !v.focusInput {
			lines = append(lines, v.styles.Selected.Render(line))
		} else {
			lines = append(lines, v.styles.Normal.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width - 4)
}

// Pages returns the current search results.
func (v *View) Pages() []domain.NotePage {
	return v.pages
}

// Cursor returns the list cursor position.
func (v *View) Cursor() int {
	return v.cursor
}

// Generation returns the current search generation.
func (v *View) Generation() int {
	return v.generation
}

// Importing reports whether an import is in flight.
func (v *View) Importing() bool {
	return v.importing
}

// InputFocused reports whether the search box has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the last error, if any.
func (v *View) Err() error {
	return v.err
}
