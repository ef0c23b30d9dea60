package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

func TestAsk_PrintsReply(t *testing.T) {
	var asked string
	withServices(t, Services{
		Chat: &mockChatService{
			SendFunc: func(_ context.Context, message string) (string, error) {
				asked = message
				return "42 documents mention that.", nil
			},
		},
	})

	out, err := executeCommand(t, "ask", "how many documents?")

	require.NoError(t, err)
	assert.Equal(t, "how many documents?", asked)
	assert.Contains(t, out, "42 documents mention that.")
}

func TestAsk_EmptyQuestionRejected(t *testing.T) {
	withServices(t, Services{Chat: &mockChatService{}})

	_, err := executeCommand(t, "ask", "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAsk_NetworkFailure(t *testing.T) {
	withServices(t, Services{
		Chat: &mockChatService{
			SendFunc: func(_ context.Context, _ string) (string, error) {
				return "", domain.ErrNetworkUnavailable
			},
		},
	})

	_, err := executeCommand(t, "ask", "anything")

	assert.ErrorIs(t, err, domain.ErrNetworkUnavailable)
}

func TestAsk_MissingService(t *testing.T) {
	withServices(t, Services{})

	_, err := executeCommand(t, "ask", "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat service not configured")
}
