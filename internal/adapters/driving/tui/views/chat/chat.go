// Package chat provides the chat transcript view for the TUI.
//
// One chat turn may be in flight at a time. The user's message is
// appended to the transcript before the send starts and is never
// rolled back; a failed send is answered conversationally by the
// assistant error reply.
package chat

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdocs-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
)

// View is the chat pane: transcript above, prompt input below.
type View struct {
	styles *styles.Styles
	input  *input.PromptInput

	chatService driving.ChatService
	ctx         context.Context

	transcript domain.Transcript
	sending    bool

	width  int
	height int
	ready  bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:      s,
		input:       input.NewPromptInput(s, "You: ", "Ask about your documents..."),
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return v, v.submit()
		}
		// Input is disabled while a send is outstanding.
		if v.sending {
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case messages.ChatReplyReceived:
		v.handleReply(msg)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit starts a send for the current prompt. Whitespace-only input
// and submissions while a turn is in flight are ignored.
func (v *View) submit() tea.Cmd {
	if v.sending {
		return nil
	}
	text := v.input.Value()
	if !domain.ValidPrompt(text) {
		return nil
	}

	v.transcript.Append(domain.OriginUser, text)
	v.input.SetValue("")
	v.sending = true

	return func() tea.Msg {
		reply, err := v.chatService.Send(v.ctx, text)
		return messages.ChatReplyReceived{Reply: reply, Err: err}
	}
}

func (v *View) handleReply(msg messages.ChatReplyReceived) {
	v.sending = false
	if msg.Err != nil {
		v.transcript.Append(domain.OriginAssistant, domain.ChatErrorReply)
		return
	}
	v.transcript.Append(domain.OriginAssistant, msg.Reply)
}

// View renders the chat pane.
func (v *View) View() string {
	sections := make([]string, 0, 6)

	sections = append(sections, v.styles.Title.Render("Chat"), "")
	sections = append(sections, v.renderTranscript(), "")

	if v.sending {
		sections = append(sections, v.styles.Muted.Render("Waiting for reply..."), "")
	}

	sections = append(sections, v.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTranscript renders the most recent turns that fit the pane.
func (v *View) renderTranscript() string {
	msgs := v.transcript.Messages()
	if len(msgs) == 0 {
		return v.styles.Muted.Render("No messages yet")
	}

	visible := v.height - 8
	if visible < 2 {
		visible = 2
	}
	start := 0
	if len(msgs) > visible {
		start = len(msgs) - visible
	}

	lines := make([]string, 0, len(msgs)-start)
	for _, m := range msgs[start:] {
		label := v.styles.UserLabel.Render("you")
		if m.Origin == domain.OriginAssistant {
			label = v.styles.AssistantLabel.Render("assistant")
		}
		lines = append(lines, label+" "+v.styles.Normal.Render(m.Text))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Focus gives the prompt input keyboard focus.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur removes keyboard focus from the prompt input.
func (v *View) Blur() {
	v.input.Blur()
}

// Sending reports whether a chat turn is in flight.
func (v *View) Sending() bool {
	return v.sending
}

// Transcript returns the chat transcript.
func (v *View) Transcript() *domain.Transcript {
	return &v.transcript
}

// Prompt returns the current prompt input value.
func (v *View) Prompt() string {
	return v.input.Value()
}

// SetPrompt sets the prompt input value.
func (v *View) SetPrompt(text string) {
	v.input.SetValue(text)
}
