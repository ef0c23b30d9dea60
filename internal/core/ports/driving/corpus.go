package driving

import (
	"context"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

// CorpusService provides the knowledge corpus listing, semantic search
// and local document ingest.
type CorpusService interface {
	// List returns every document currently in the corpus.
	List(ctx context.Context) ([]domain.KnowledgeEntry, error)

	// Search returns documents ranked by vector distance to query,
	// closest first.
	Search(ctx context.Context, query string) ([]domain.KnowledgeEntry, error)

	// Ingest uploads a local document to the corpus.
	Ingest(ctx context.Context, path string) error
}
