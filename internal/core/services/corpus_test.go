package services

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

func TestCorpusService_List(t *testing.T) {
	api := &MockAPI{
		GetFunc: func(_ context.Context, path string, query url.Values, out any) error {
			assert.Equal(t, "/api/files", path)
			assert.Empty(t, query.Get("q"))
			*(out.(*[]fileRow)) = []fileRow{
				{FileName: "a.pdf", Chunks: 12},
				{FileName: "b.txt", Chunks: 3},
			}
			return nil
		},
	}
	svc := NewCorpusService(api)

	entries, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.pdf", entries[0].Name)
	assert.Equal(t, 12, entries[0].Chunks)
	assert.False(t, entries[0].HasDistance)
}

func TestCorpusService_Search(t *testing.T) {
	distance := 0.31
	api := &MockAPI{
		GetFunc: func(_ context.Context, path string, query url.Values, out any) error {
			assert.Equal(t, "/api/files", path)
			assert.Equal(t, "quarterly report", query.Get("q"))
			*(out.(*[]fileRow)) = []fileRow{
				{FileName: "q3.pdf", Chunks: 8, Distance: &distance},
			}
			return nil
		},
	}
	svc := NewCorpusService(api)

	entries, err := svc.Search(context.Background(), "  quarterly report ")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].HasDistance)
	assert.InDelta(t, 0.31, entries[0].Distance, 1e-9)
}

func TestCorpusService_Search_EmptyQueryFallsBackToListing(t *testing.T) {
	api := &MockAPI{
		GetFunc: func(_ context.Context, _ string, query url.Values, out any) error {
			assert.Nil(t, query)
			*(out.(*[]fileRow)) = nil
			return nil
		},
	}
	svc := NewCorpusService(api)

	entries, err := svc.Search(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCorpusService_Search_PropagatesFailure(t *testing.T) {
	api := &MockAPI{
		GetFunc: func(_ context.Context, _ string, _ url.Values, _ any) error {
			return domain.ErrNetworkUnavailable
		},
	}
	svc := NewCorpusService(api)

	_, err := svc.Search(context.Background(), "x")

	assert.ErrorIs(t, err, domain.ErrNetworkUnavailable)
}

func TestCorpusService_Ingest(t *testing.T) {
	api := &MockAPI{}
	svc := NewCorpusService(api)

	err := svc.Ingest(context.Background(), "/tmp/notes.md")

	require.NoError(t, err)
	assert.Equal(t, []string{"/api/ingest"}, api.UploadCalls)
}

func TestCorpusService_Ingest_RejectsBlankPath(t *testing.T) {
	api := &MockAPI{}
	svc := NewCorpusService(api)

	err := svc.Ingest(context.Background(), " ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, api.UploadCalls)
}
