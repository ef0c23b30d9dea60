package services

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chatdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/chatdocs-cli/internal/logger"
)

// Ensure ConnectorService implements the interface.
var _ driving.ConnectorService = (*ConnectorService)(nil)

// Backend paths for the two connector flows. The connect endpoints
// walk the browser through the identity provider and back to the
// `next` URL carried in the query.
const (
	driveTokenPath   = "/api/drive/token"
	driveImportPath  = "/api/drive/files"
	driveConnectPath = "/connect/drive/"

	notionTokenPath   = "/api/notion/token"
	notionPagesPath   = "/api/notion/pages"
	notionImportPath  = "/api/notion/files"
	notionConnectPath = "/connect/notion/"
)

// tokenResponse is the wire shape of both token endpoints.
type tokenResponse struct {
	Token string `json:"token"`
}

// ConnectorService drives the redirect-based connector flows. It holds
// one session per connector kind; phases advance monotonically and
// every failure path returns to idle.
type ConnectorService struct {
	mu       sync.Mutex
	api      driven.API
	nav      driven.Navigator
	picker   driven.FilePicker
	phases   map[domain.ConnectorKind]domain.ConnectorPhase
	sessions map[domain.ConnectorKind]string
}

// NewConnectorService creates a new connector service.
func NewConnectorService(api driven.API, nav driven.Navigator, picker driven.FilePicker) *ConnectorService {
	return &ConnectorService{
		api:    api,
		nav:    nav,
		picker: picker,
		phases: map[domain.ConnectorKind]domain.ConnectorPhase{
			domain.ConnectorDrive:  domain.PhaseIdle,
			domain.ConnectorNotion: domain.PhaseIdle,
		},
		sessions: make(map[domain.ConnectorKind]string),
	}
}

// Phase reports the current lifecycle phase for kind.
func (s *ConnectorService) Phase(kind domain.ConnectorKind) domain.ConnectorPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phases[kind]
}

// setPhase records a phase transition.
func (s *ConnectorService) setPhase(kind domain.ConnectorKind, phase domain.ConnectorPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger.Debug("Connector %s [%s]: %s -> %s", kind, s.sessions[kind], s.phases[kind], phase)
	s.phases[kind] = phase
}

// begin claims the session for kind. It reports domain.ErrConnectorBusy
// while a flow of the same kind is mid-flight; starting a new flow is
// then a no-op.
func (s *ConnectorService) begin(kind domain.ConnectorKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phases[kind] {
	case domain.PhaseFetchingToken, domain.PhasePickerOpen, domain.PhaseImporting:
		return domain.ErrConnectorBusy
	case domain.PhaseIdle, domain.PhaseAwaitingRedirectReturn:
		// A session parked on a redirect hand-off may be restarted;
		// the browser round trip might have been abandoned.
	}

	// Session IDs correlate the verbose log lines of one flow.
	s.sessions[kind] = uuid.NewString()
	logger.Debug("Connector %s [%s]: %s -> %s", kind, s.sessions[kind], s.phases[kind], domain.PhaseFetchingToken)
	s.phases[kind] = domain.PhaseFetchingToken
	return nil
}

// fetchToken obtains the delegated token for kind. When the token
// endpoint signals no grant the browser is handed to the connect
// endpoint and domain.ErrAuthRedirect is returned; the flow resumes on
// the next launch via the resume marker embedded in the return URL.
func (s *ConnectorService) fetchToken(ctx context.Context, kind domain.ConnectorKind) (string, error) {
	tokenPath := driveTokenPath
	connectPath := driveConnectPath
	if kind == domain.ConnectorNotion {
		tokenPath = notionTokenPath
		connectPath = notionConnectPath
	}

	var resp tokenResponse
	err := s.api.Get(ctx, tokenPath, nil, &resp)

	switch {
	case err == nil && resp.Token == "":
		return "", domain.ErrEmptyCredential

	case err == nil:
		return resp.Token, nil

	case domain.SignalsNoGrant(err):
		next, nerr := s.returnURL(kind)
		if nerr != nil {
			return "", fmt.Errorf("building return url: %w", nerr)
		}
		target := connectPath + "?" + url.Values{"next": []string{next}}.Encode()
		if rerr := s.nav.Redirect(target); rerr != nil {
			return "", fmt.Errorf("redirecting for authorization: %w", rerr)
		}
		return "", domain.ErrAuthRedirect

	default:
		return "", fmt.Errorf("fetching %s token: %w", kind, err)
	}
}

// returnURL is the client URL the provider redirects back to: the
// current URL with the resume marker for kind. Only this marker is
// trusted across the redirect.
func (s *ConnectorService) returnURL(kind domain.ConnectorKind) (string, error) {
	current, err := s.nav.Current()
	if err != nil {
		return "", err
	}
	return WithResumeMarker(current, kind)
}

// ConnectDrive runs the full cloud-storage flow. The returned entries
// are for optimistic display: they are returned alongside an import
// error when the POST fails, since entries already shown remain shown.
func (s *ConnectorService) ConnectDrive(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	kind := domain.ConnectorDrive
	if err := s.begin(kind); err != nil {
		return nil, err
	}

	token, err := s.fetchToken(ctx, kind)
	if err != nil {
		if err == domain.ErrAuthRedirect {
			s.setPhase(kind, domain.PhaseAwaitingRedirectReturn)
		} else {
			s.setPhase(kind, domain.PhaseIdle)
		}
		return nil, err
	}

	s.setPhase(kind, domain.PhasePickerOpen)
	picked, err := s.picker.Pick(ctx, &oauth2.Token{AccessToken: token})
	if err != nil {
		s.setPhase(kind, domain.PhaseIdle)
		return nil, fmt.Errorf("drive picker: %w", err)
	}
	if len(picked) == 0 {
		s.setPhase(kind, domain.PhaseIdle)
		return nil, domain.ErrUserCancelled
	}

	s.setPhase(kind, domain.PhaseImporting)
	defer s.setPhase(kind, domain.PhaseIdle)

	entries := make([]domain.KnowledgeEntry, 0, len(picked))
	for _, p := range picked {
		entries = append(entries, domain.KnowledgeEntry{Name: p.Name})
	}

	payload := struct {
		Files []domain.PickedFile `json:"files"`
	}{Files: picked}
	if err := s.api.Post(ctx, driveImportPath, payload, nil); err != nil {
		return entries, fmt.Errorf("importing drive files: %w", err)
	}
	logger.Info("Imported %d drive files", len(picked))
	return entries, nil
}

// BeginNotion starts the workspace-notes flow up to the picker phase.
func (s *ConnectorService) BeginNotion(ctx context.Context) error {
	kind := domain.ConnectorNotion
	if err := s.begin(kind); err != nil {
		return err
	}

	if _, err := s.fetchToken(ctx, kind); err != nil {
		if err == domain.ErrAuthRedirect {
			s.setPhase(kind, domain.PhaseAwaitingRedirectReturn)
		} else {
			s.setPhase(kind, domain.PhaseIdle)
		}
		return err
	}

	s.setPhase(kind, domain.PhasePickerOpen)
	return nil
}

// ResumeNotion re-enters the notes flow after an authorization
// redirect, directly at the picker phase. The grant now exists
// server-side, so the token fetch is skipped.
func (s *ConnectorService) ResumeNotion() {
	s.setPhase(domain.ConnectorNotion, domain.PhasePickerOpen)
}

// notePageRow is the wire shape of one workspace page.
type notePageRow struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SearchPages searches workspace pages while the notes picker is open.
func (s *ConnectorService) SearchPages(ctx context.Context, query string) ([]domain.NotePage, error) {
	var rows []notePageRow
	q := url.Values{"q": []string{query}}
	if err := s.api.Get(ctx, notionPagesPath, q, &rows); err != nil {
		return nil, fmt.Errorf("searching pages: %w", err)
	}

	pages := make([]domain.NotePage, 0, len(rows))
	for _, row := range rows {
		pages = append(pages, domain.NotePage{ID: row.ID, Title: row.Title})
	}
	return pages, nil
}

// ImportPages persists the picked pages as one batch. As with drive
// imports, entries are returned alongside an import error so already
// displayed entries stay put.
func (s *ConnectorService) ImportPages(ctx context.Context, pages []domain.NotePage) ([]domain.KnowledgeEntry, error) {
	kind := domain.ConnectorNotion
	if len(pages) == 0 {
		s.setPhase(kind, domain.PhaseIdle)
		return nil, domain.ErrUserCancelled
	}

	s.setPhase(kind, domain.PhaseImporting)
	defer s.setPhase(kind, domain.PhaseIdle)

	entries := make([]domain.KnowledgeEntry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, domain.KnowledgeEntry{Name: p.Title})
	}

	payload := struct {
		Pages []notePageRow `json:"pages"`
	}{}
	for _, p := range pages {
		payload.Pages = append(payload.Pages, notePageRow{ID: p.ID, Title: p.Title})
	}
	if err := s.api.Post(ctx, notionImportPath, payload, nil); err != nil {
		return entries, fmt.Errorf("importing pages: %w", err)
	}
	logger.Info("Imported %d notion pages", len(pages))
	return entries, nil
}

// CancelNotion dismisses the notes picker without a selection.
func (s *ConnectorService) CancelNotion() {
	s.setPhase(domain.ConnectorNotion, domain.PhaseIdle)
}
