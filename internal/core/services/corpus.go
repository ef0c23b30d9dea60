package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService provides corpus listing, semantic search and ingest.
type CorpusService struct {
	api driven.API
}

// NewCorpusService creates a new corpus service.
func NewCorpusService(api driven.API) *CorpusService {
	return &CorpusService{api: api}
}

// fileRow is the wire shape of one corpus listing entry.
type fileRow struct {
	FileName string   `json:"file_name"`
	Chunks   int      `json:"chunks"`
	Distance *float64 `json:"distance"`
}

// List returns every document currently in the corpus.
func (s *CorpusService) List(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	return s.fetch(ctx, "")
}

// Search returns documents ranked by vector distance to query,
// closest first. An empty query falls back to the plain listing.
func (s *CorpusService) Search(ctx context.Context, query string) ([]domain.KnowledgeEntry, error) {
	return s.fetch(ctx, strings.TrimSpace(query))
}

func (s *CorpusService) fetch(ctx context.Context, query string) ([]domain.KnowledgeEntry, error) {
	var q url.Values
	if query != "" {
		q = url.Values{"q": []string{query}}
	}

	var rows []fileRow
	if err := s.api.Get(ctx, "/api/files", q, &rows); err != nil {
		return nil, fmt.Errorf("fetching corpus listing: %w", err)
	}
	logger.Debug("Corpus listing: %d entries (query=%q)", len(rows), query)

	entries := make([]domain.KnowledgeEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.KnowledgeEntry{
			Name:   row.FileName,
			Chunks: row.Chunks,
		}
		if row.Distance != nil {
			entry.Distance = *row.Distance
			entry.HasDistance = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Ingest uploads a local document to the corpus.
func (s *CorpusService) Ingest(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.ErrInvalidInput
	}
	if err := s.api.Upload(ctx, "/api/ingest", path); err != nil {
		return fmt.Errorf("ingesting %s: %w", path, err)
	}
	logger.Info("Ingested %s", path)
	return nil
}
