// Package corpus provides the corpus browser view for the TUI.
//
// Typing in the filter box arms a debounce timer instead of fetching
// immediately. Every keystroke bumps a generation counter; the timer
// and the fetch both carry the generation they were armed with, and
// anything stamped with a superseded generation is dropped on arrival.
// Late responses from an abandoned query can therefore never clobber
// the results of a newer one.
package corpus

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/components/entrylist"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// DebounceInterval is how long typing must pause before a search is
// issued.
const DebounceInterval = 300 * time.Millisecond

// View is the corpus pane: filter input above, document list below.
type View struct {
	styles *styles.Styles
	input  *input.PromptInput
	list   *entrylist.EntryList

	corpusService driving.CorpusService
	ctx           context.Context

	corpus     domain.Corpus
	generation int
	lastQuery  string
	fetching   bool
	err        error

	width  int
	height int
}

// NewView creates a new corpus view.
func NewView(s *styles.Styles, corpusService driving.CorpusService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:        s,
		input:         input.NewPromptInput(s, "Filter: ", "Search documents..."),
		list:          entrylist.NewEntryList(s),
		corpusService: corpusService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the initial corpus listing.
func (v *View) Init() tea.Cmd {
	v.input.Blur()
	return v.fetch(v.generation, "")
}

// Update handles messages for the corpus view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchDebounceElapsed:
		// A newer keystroke re-armed the timer; let that one fire.
		if msg.Generation != v.generation {
			return v, nil
		}
		v.fetching = true
		return v, v.fetch(msg.Generation, v.input.Value())

	case messages.CorpusLoaded:
		v.handleLoaded(msg)
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown:
		v.list, _ = v.list.Update(msg)
		return v, nil
	default:
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == before {
		return v, cmd
	}

	// The text changed: invalidate outstanding timers and fetches and
	// arm a fresh debounce window.
	v.generation++
	gen := v.generation
	debounce := tea.Tick(DebounceInterval, func(time.Time) tea.Msg {
		return messages.SearchDebounceElapsed{Generation: gen}
	})
	return v, tea.Batch(cmd, debounce)
}

// fetch lists or searches the corpus, stamping the response with the
// generation that requested it.
func (v *View) fetch(generation int, query string) tea.Cmd {
	return func() tea.Msg {
		var entries []domain.KnowledgeEntry
		var err error
		if query == "" {
			entries, err = v.corpusService.List(v.ctx)
		} else {
			entries, err = v.corpusService.Search(v.ctx, query)
		}
		return messages.CorpusLoaded{Generation: generation, Entries: entries, Err: err}
	}
}

func (v *View) handleLoaded(msg messages.CorpusLoaded) {
	// Stale response from a superseded fetch.
	if msg.Generation != v.generation {
		return
	}
	v.fetching = false
	if msg.Err != nil {
		// Failed fetches are silent: the previous listing stays put.
		v.err = msg.Err
		logger.Debug("Corpus fetch failed: %v", msg.Err)
		return
	}
	v.err = nil
	v.lastQuery = v.input.Value()
	v.corpus.Replace(msg.Entries)
	v.list.SetEntries(v.corpus.Entries())
}

// AppendImported adds connector-imported entries to the visible set.
// They stay until the next full refresh replaces the listing.
func (v *View) AppendImported(label string, entries []domain.KnowledgeEntry) {
	v.corpus.AppendImported(label, entries)
	v.list.SetEntries(v.corpus.Entries())
}

// Refresh re-runs the current query at a new generation.
func (v *View) Refresh() tea.Cmd {
	v.generation++
	v.fetching = true
	return v.fetch(v.generation, v.input.Value())
}

// View renders the corpus pane.
func (v *View) View() string {
	sections := make([]string, 0, 6)

	sections = append(sections, v.styles.Title.Render("Corpus"), "")
	sections = append(sections, v.input.View(), "")

	if v.fetching {
		sections = append(sections, v.styles.Muted.Render("Searching..."), "")
	}

	sections = append(sections, v.list.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8)
}

// Focus gives the filter input keyboard focus.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur removes keyboard focus from the filter input.
func (v *View) Blur() {
	v.input.Blur()
}

// Entries returns the visible corpus entries.
func (v *View) Entries() []domain.KnowledgeEntry {
	return v.corpus.Entries()
}

// Generation returns the current fetch generation.
func (v *View) Generation() int {
	return v.generation
}

// Query returns the current filter text.
func (v *View) Query() string {
	return v.input.Value()
}

// Err returns the last fetch error, if any.
func (v *View) Err() error {
	return v.err
}
