package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPorts_ValidateComplete(t *testing.T) {
	assert.NoError(t, testPorts().Validate())
}

func TestNewPorts(t *testing.T) {
	ports := testPorts()

	require.NotNil(t, ports.Chat)
	require.NotNil(t, ports.Corpus)
	require.NotNil(t, ports.Connector)
	require.NotNil(t, ports.Resume)
}
