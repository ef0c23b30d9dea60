package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService sends chat turns through the mutation envelope.
type ChatService struct {
	api driven.API
}

// NewChatService creates a new chat service.
func NewChatService(api driven.API) *ChatService {
	return &ChatService{api: api}
}

// chatRequest is the wire shape of one chat turn.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the wire shape of the assistant's reply.
type chatResponse struct {
	Response string `json:"response"`
}

// Send posts the user's message and returns the assistant's reply.
// An empty reply field is substituted with the no-response placeholder.
func (s *ChatService) Send(ctx context.Context, message string) (string, error) {
	if !domain.ValidPrompt(message) {
		return "", domain.ErrInvalidInput
	}

	logger.Section("Chat Turn")
	logger.Debug("Message length: %d", len(message))

	var resp chatResponse
	if err := s.api.Post(ctx, "/api/chat", chatRequest{Message: message}, &resp); err != nil {
		return "", fmt.Errorf("sending chat turn: %w", err)
	}

	if strings.TrimSpace(resp.Response) == "" {
		logger.Debug("Empty response field, substituting placeholder")
		return domain.NoResponsePlaceholder, nil
	}
	return resp.Response, nil
}
