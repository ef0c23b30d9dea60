package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestError_Error(t *testing.T) {
	assert.Equal(t, "request failed: 500", (&RequestError{Status: 500}).Error())
	assert.Equal(t,
		"request failed: 400 (not_connected)",
		(&RequestError{Status: 400, Reason: "not_connected"}).Error(),
	)
}

func TestIsRequestFailed(t *testing.T) {
	wrapped := fmt.Errorf("fetching token: %w", &RequestError{Status: 403})

	re, ok := IsRequestFailed(wrapped)
	require.True(t, ok)
	assert.Equal(t, 403, re.Status)

	_, ok = IsRequestFailed(ErrNetworkUnavailable)
	assert.False(t, ok)
}

func TestSignalsNoGrant(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "no grant rejection",
			err:  &RequestError{Status: 400, Reason: NoGrantReason},
			want: true,
		},
		{
			name: "wrapped no grant rejection",
			err:  fmt.Errorf("drive: %w", &RequestError{Status: 400, Reason: NoGrantReason}),
			want: true,
		},
		{
			name: "other rejection",
			err:  &RequestError{Status: 500},
			want: false,
		},
		{
			name: "transport failure",
			err:  ErrNetworkUnavailable,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SignalsNoGrant(tt.err))
		})
	}
}
