package driving

import "context"

// ChatService sends one chat turn to the assistant backend.
type ChatService interface {
	// Send posts the user's message and returns the assistant's reply.
	// An empty reply is substituted with the no-response placeholder.
	Send(ctx context.Context, message string) (string, error)
}
