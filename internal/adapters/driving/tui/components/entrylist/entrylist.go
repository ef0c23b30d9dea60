// Package entrylist provides the corpus document list component.
package entrylist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

// EntryList displays knowledge entries in a navigable list.
type EntryList struct {
	entries  []domain.KnowledgeEntry
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewEntryList creates a new entry list component.
func NewEntryList(s *styles.Styles) *EntryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &EntryList{
		entries:  nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the entry list.
func (e *EntryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (e *EntryList) Update(msg tea.Msg) (*EntryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			e.MoveUp()
		case tea.KeyDown:
			e.MoveDown()
		default:
			// Handle other keys
		}
	}
	return e, nil
}

// View renders the entry list.
func (e *EntryList) View() string {
	if len(e.entries) == 0 {
		return e.styles.Muted.Render("No documents")
	}

	lines := make([]string, 0, len(e.entries)+2)

	header := e.styles.Subtitle.Render(fmt.Sprintf("Documents (%d)", len(e.entries)))
	lines = append(lines, header, "")

	visibleCount := e.height - 4
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if e.selected >= visibleCount {
		start = e.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(e.entries) {
		end = len(e.entries)
	}

	for i := start; i < end; i++ {
		lines = append(lines, e.renderEntry(i, &e.entries[i]))
	}

	return strings.Join(lines, "\n")
}

// renderEntry formats one corpus document line.
func (e *EntryList) renderEntry(index int, entry *domain.KnowledgeEntry) string {
	indicator := "  "
	if index == e.selected {
		indicator = "> "
	}

	name := entry.Name
	maxNameLen := e.width - 24
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	detail := fmt.Sprintf("%d chunks", entry.Chunks)
	if entry.SourceLabel != "" {
		detail = entry.SourceLabel
	}
	if entry.HasDistance {
		detail = fmt.Sprintf("%.3f", entry.Distance)
	}

	if index == e.selected {
		return e.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, detail))
	}
	return e.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
		e.styles.Muted.Render(detail)
}

// SetEntries replaces the list contents.
func (e *EntryList) SetEntries(entries []domain.KnowledgeEntry) {
	e.entries = entries
	if e.selected >= len(entries) {
		e.selected = 0
	}
}

// Entries returns the current entries.
func (e *EntryList) Entries() []domain.KnowledgeEntry {
	return e.entries
}

// Selected returns the index of the selected entry.
func (e *EntryList) Selected() int {
	return e.selected
}

// SelectedEntry returns the currently selected entry, or nil if none.
func (e *EntryList) SelectedEntry() *domain.KnowledgeEntry {
	if len(e.entries) == 0 || e.selected < 0 || e.selected >= len(e.entries) {
		return nil
	}
	return &e.entries[e.selected]
}

// MoveUp moves selection up.
func (e *EntryList) MoveUp() {
	if e.selected > 0 {
		e.selected--
	}
}

// MoveDown moves selection down.
func (e *EntryList) MoveDown() {
	if e.selected < len(e.entries)-1 {
		e.selected++
	}
}

// SetDimensions sets the component dimensions.
func (e *EntryList) SetDimensions(width, height int) {
	e.width = width
	e.height = height
}

// Count returns the number of entries.
func (e *EntryList) Count() int {
	return len(e.entries)
}

// IsEmpty returns whether the list is empty.
func (e *EntryList) IsEmpty() bool {
	return len(e.entries) == 0
}
