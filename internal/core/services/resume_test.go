package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

func TestResumeService_Consume_Drive(t *testing.T) {
	nav := &MockNavigator{CurrentURL: "/chat?resume=drive"}
	svc := NewResumeService(nav)

	kind, ok, err := svc.Consume()

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.ConnectorDrive, kind)
	// Marker stripped via history replacement.
	assert.Equal(t, []string{"/chat"}, nav.ReplacedWith)
}

func TestResumeService_Consume_Notion(t *testing.T) {
	nav := &MockNavigator{CurrentURL: "/chat?resume=notion"}
	svc := NewResumeService(nav)

	kind, ok, err := svc.Consume()

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.ConnectorNotion, kind)
}

func TestResumeService_Consume_Idempotent(t *testing.T) {
	nav := &MockNavigator{CurrentURL: "/chat?resume=drive"}
	svc := NewResumeService(nav)

	_, ok, err := svc.Consume()
	require.NoError(t, err)
	require.True(t, ok)

	// Second consume (simulating a refresh after the marker was
	// stripped) must trigger nothing.
	_, ok, err = svc.Consume()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, nav.ReplacedWith, 1)
}

func TestResumeService_Consume_NoMarker(t *testing.T) {
	nav := &MockNavigator{CurrentURL: "/chat?tab=files"}
	svc := NewResumeService(nav)

	_, ok, err := svc.Consume()

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, nav.ReplacedWith)
}

func TestResumeService_Consume_UnknownMarkerStrippedAndIgnored(t *testing.T) {
	nav := &MockNavigator{CurrentURL: "/chat?resume=dropbox"}
	svc := NewResumeService(nav)

	_, ok, err := svc.Consume()

	require.NoError(t, err)
	assert.False(t, ok)
	// Even unknown markers are stripped so a refresh stays quiet.
	assert.Equal(t, []string{"/chat"}, nav.ReplacedWith)
}

func TestResumeService_Consume_PreservesOtherParams(t *testing.T) {
	nav := &MockNavigator{CurrentURL: "/chat?resume=drive&tab=files"}
	svc := NewResumeService(nav)

	_, ok, err := svc.Consume()

	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, nav.ReplacedWith, 1)
	assert.Equal(t, "/chat?tab=files", nav.ReplacedWith[0])
}

func TestWithResumeMarker(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind domain.ConnectorKind
		want string
	}{
		{"bare path", "/chat", domain.ConnectorDrive, "/chat?resume=drive"},
		{"existing params", "/chat?tab=files", domain.ConnectorNotion, "/chat?resume=notion&tab=files"},
		{"replaces existing marker", "/chat?resume=drive", domain.ConnectorNotion, "/chat?resume=notion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WithResumeMarker(tt.in, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
