package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptInput_ValueRoundTrip(t *testing.T) {
	p := NewPromptInput(nil, "You: ", "type here")

	p.SetValue("hello")

	assert.Equal(t, "hello", p.Value())
}

func TestPromptInput_FocusBlur(t *testing.T) {
	p := NewPromptInput(nil, "You: ", "")

	require.True(t, p.Focused())
	p.Blur()
	assert.False(t, p.Focused())
	p.Focus()
	assert.True(t, p.Focused())
}

func TestPromptInput_SetWidthClampsMinimum(t *testing.T) {
	p := NewPromptInput(nil, "You: ", "")

	p.SetWidth(5)

	assert.Equal(t, 5, p.Width())
}

func TestPromptInput_Reset(t *testing.T) {
	p := NewPromptInput(nil, "You: ", "")
	p.SetValue("something")

	p.Reset()

	assert.Empty(t, p.Value())
}
