package domain

import "strings"

// Origin identifies who produced a chat message.
type Origin int

const (
	// OriginUser is a message typed by the user.
	OriginUser Origin = iota
	// OriginAssistant is a message produced by the assistant.
	OriginAssistant
)

// String returns the string representation of the origin.
func (o Origin) String() string {
	switch o {
	case OriginUser:
		return "user"
	case OriginAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// Message is a single chat transcript entry.
// Messages are immutable once appended; Ordinal is the append position
// and defines display order.
type Message struct {
	// Origin is who produced the message.
	Origin Origin

	// Text is the message body.
	Text string

	// Ordinal is the append position within the transcript.
	Ordinal int
}

// Transcript is an ordered, append-only list of messages.
// The zero value is ready to use.
type Transcript struct {
	messages []Message
}

// Append adds a message to the transcript and returns it with its
// ordinal assigned. Appended messages are never mutated or removed.
func (t *Transcript) Append(origin Origin, text string) Message {
	msg := Message{
		Origin:  origin,
		Text:    text,
		Ordinal: len(t.messages),
	}
	t.messages = append(t.messages, msg)
	return msg
}

// Messages returns the transcript in append order.
func (t *Transcript) Messages() []Message {
	return t.messages
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recently appended message, or nil if empty.
func (t *Transcript) Last() *Message {
	if len(t.messages) == 0 {
		return nil
	}
	return &t.messages[len(t.messages)-1]
}

// ValidPrompt reports whether text is a sendable chat message.
// Whitespace-only input is not sendable.
func ValidPrompt(text string) bool {
	return strings.TrimSpace(text) != ""
}

// NoResponsePlaceholder is shown when the backend replies with an
// empty response field.
const NoResponsePlaceholder = "(no response)"

// ChatErrorReply is appended to the transcript when a chat send fails.
// Chat failures are rendered conversationally, never as a dialog.
const ChatErrorReply = "Sorry, there was an error contacting the server."
