package services

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// Ensure ResumeService implements the interface.
var _ driving.ResumeController = (*ResumeService)(nil)

// ResumeParam is the query parameter that carries the resume marker.
// Its value names the connector to resume and nothing else; no other
// state is trusted from the URL.
const ResumeParam = "resume"

// ResumeService inspects the launch URL for a resume marker. The URL
// is parsed exactly once per process; the marker is stripped from the
// persisted URL via history replacement so a refresh or back
// navigation does not re-trigger the flow.
type ResumeService struct {
	mu       sync.Mutex
	nav      driven.Navigator
	consumed bool
}

// NewResumeService creates a new resume controller.
func NewResumeService(nav driven.Navigator) *ResumeService {
	return &ResumeService{nav: nav}
}

// Consume inspects the launch URL exactly once.
func (s *ResumeService) Consume() (domain.ConnectorKind, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consumed {
		return "", false, nil
	}
	s.consumed = true

	current, err := s.nav.Current()
	if err != nil {
		return "", false, fmt.Errorf("reading current url: %w", err)
	}

	u, err := url.Parse(current)
	if err != nil {
		return "", false, fmt.Errorf("parsing current url: %w", err)
	}

	q := u.Query()
	marker := q.Get(ResumeParam)
	if marker == "" {
		return "", false, nil
	}

	q.Del(ResumeParam)
	u.RawQuery = q.Encode()
	if err := s.nav.Replace(u.String()); err != nil {
		return "", false, fmt.Errorf("stripping resume marker: %w", err)
	}

	kind := domain.ConnectorKind(marker)
	if !kind.Valid() {
		logger.Warn("Unknown resume marker %q, ignoring", marker)
		return "", false, nil
	}
	logger.Info("Resuming %s connector flow", kind)
	return kind, true, nil
}

// WithResumeMarker returns rawURL with the resume marker for kind set,
// replacing any marker already present.
func WithResumeMarker(rawURL string, kind domain.ConnectorKind) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url: %w", err)
	}
	q := u.Query()
	q.Set(ResumeParam, string(kind))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
