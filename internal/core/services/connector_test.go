package services

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

func grantedAPI(token string) *MockAPI {
	return &MockAPI{
		GetFunc: func(_ context.Context, path string, _ url.Values, out any) error {
			if path == driveTokenPath || path == notionTokenPath {
				*(out.(*tokenResponse)) = tokenResponse{Token: token}
			}
			return nil
		},
	}
}

func noGrantAPI() *MockAPI {
	return &MockAPI{
		GetFunc: func(_ context.Context, path string, _ url.Values, _ any) error {
			if path == driveTokenPath || path == notionTokenPath {
				return &domain.RequestError{Status: 400, Reason: domain.NoGrantReason}
			}
			return nil
		},
	}
}

func TestConnectorService_ConnectDrive_FullFlow(t *testing.T) {
	api := grantedAPI("ya29.token")
	nav := &MockNavigator{CurrentURL: "/chat"}
	picker := &MockFilePicker{
		PickFunc: func(_ context.Context, _ *oauth2.Token) ([]domain.PickedFile, error) {
			return []domain.PickedFile{{ID: "1", Name: "b"}, {ID: "2", Name: "c"}}, nil
		},
	}
	svc := NewConnectorService(api, nav, picker)

	entries, err := svc.ConnectDrive(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Name)
	assert.Equal(t, "c", entries[1].Name)
	assert.Equal(t, []string{"ya29.token"}, picker.Tokens)
	assert.Equal(t, []string{driveImportPath}, api.PostCalls)
	assert.Equal(t, domain.PhaseIdle, svc.Phase(domain.ConnectorDrive))
}

func TestConnectorService_ConnectDrive_NoGrantRedirects(t *testing.T) {
	api := noGrantAPI()
	nav := &MockNavigator{CurrentURL: "/chat"}
	svc := NewConnectorService(api, nav, &MockFilePicker{})

	_, err := svc.ConnectDrive(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRedirect)
	assert.Equal(t, domain.PhaseAwaitingRedirectReturn, svc.Phase(domain.ConnectorDrive))

	require.Len(t, nav.RedirectedTo, 1)
	target, perr := url.Parse(nav.RedirectedTo[0])
	require.NoError(t, perr)
	assert.Equal(t, driveConnectPath, target.Path)

	next, perr := url.Parse(target.Query().Get("next"))
	require.NoError(t, perr)
	assert.Equal(t, "drive", next.Query().Get(ResumeParam))
}

func TestConnectorService_ConnectDrive_EmptyToken(t *testing.T) {
	api := grantedAPI("")
	nav := &MockNavigator{CurrentURL: "/chat"}
	svc := NewConnectorService(api, nav, &MockFilePicker{})

	_, err := svc.ConnectDrive(context.Background())

	assert.ErrorIs(t, err, domain.ErrEmptyCredential)
	assert.Equal(t, domain.PhaseIdle, svc.Phase(domain.ConnectorDrive))
	assert.Empty(t, nav.RedirectedTo)
}

func TestConnectorService_ConnectDrive_TokenFailureReturnsToIdle(t *testing.T) {
	api := &MockAPI{
		GetFunc: func(_ context.Context, _ string, _ url.Values, _ any) error {
			return &domain.RequestError{Status: 500}
		},
	}
	svc := NewConnectorService(api, &MockNavigator{CurrentURL: "/chat"}, &MockFilePicker{})

	_, err := svc.ConnectDrive(context.Background())

	re, ok := domain.IsRequestFailed(err)
	require.True(t, ok)
	assert.Equal(t, 500, re.Status)
	assert.Equal(t, domain.PhaseIdle, svc.Phase(domain.ConnectorDrive))
}

func TestConnectorService_ConnectDrive_PickerCancelled(t *testing.T) {
	api := grantedAPI("tok")
	picker := &MockFilePicker{
		PickFunc: func(_ context.Context, _ *oauth2.Token) ([]domain.PickedFile, error) {
			return nil, nil
		},
	}
	svc := NewConnectorService(api, &MockNavigator{CurrentURL: "/chat"}, picker)

	_, err := svc.ConnectDrive(context.Background())

	assert.ErrorIs(t, err, domain.ErrUserCancelled)
	assert.Empty(t, api.PostCalls)
	assert.Equal(t, domain.PhaseIdle, svc.Phase(domain.ConnectorDrive))
}

func TestConnectorService_ConnectDrive_ImportFailureKeepsEntries(t *testing.T) {
	api := grantedAPI("tok")
	api.PostFunc = func(_ context.Context, _ string, _ any, _ any) error {
		return &domain.RequestError{Status: 500}
	}
	picker := &MockFilePicker{
		PickFunc: func(_ context.Context, _ *oauth2.Token) ([]domain.PickedFile, error) {
			return []domain.PickedFile{{ID: "1", Name: "b"}}, nil
		},
	}
	svc := NewConnectorService(api, &MockNavigator{CurrentURL: "/chat"}, picker)

	entries, err := svc.ConnectDrive(context.Background())

	require.Error(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Name)
	assert.Equal(t, domain.PhaseIdle, svc.Phase(domain.ConnectorDrive))
}

func TestConnectorService_ConnectDrive_BusyIsNoOp(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := grantedAPI("tok")
	picker := &MockFilePicker{
		PickFunc: func(_ context.Context, _ *oauth2.Token) ([]domain.PickedFile, error) {
			close(started)
			<-release
			return nil, nil
		},
	}
	svc := NewConnectorService(api, &MockNavigator{CurrentURL: "/chat"}, picker)

	done := make(chan error, 1)
	go func() {
		_, err := svc.ConnectDrive(context.Background())
		done <- err
	}()
	<-started

	_, err := svc.ConnectDrive(context.Background())
	assert.ErrorIs(t, err, domain.ErrConnectorBusy)

	close(release)
	assert.ErrorIs(t, <-done, domain.ErrUserCancelled)
}

func TestConnectorService_BeginNotion(t *testing.T) {
	svc := NewConnectorService(grantedAPI("secret"), &MockNavigator{CurrentURL: "/chat"}, nil)

	err := svc.BeginNotion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.PhasePickerOpen, svc.Phase(domain.ConnectorNotion))
}

func TestConnectorService_BeginNotion_NoGrantRedirects(t *testing.T) {
	nav := &MockNavigator{CurrentURL: "/chat"}
	svc := NewConnectorService(noGrantAPI(), nav, nil)

	err := svc.BeginNotion(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRedirect)
	assert.Equal(t, domain.PhaseAwaitingRedirectReturn, svc.Phase(domain.ConnectorNotion))

	require.Len(t, nav.RedirectedTo, 1)
	target, perr := url.Parse(nav.RedirectedTo[0])
	require.NoError(t, perr)
	assert.Equal(t, notionConnectPath, target.Path)
}

func TestConnectorService_ResumeNotion_BypassesIdle(t *testing.T) {
	svc := NewConnectorService(&MockAPI{}, &MockNavigator{}, nil)

	svc.ResumeNotion()

	assert.Equal(t, domain.PhasePickerOpen, svc.Phase(domain.ConnectorNotion))
	// No token fetch on resume; the grant exists server-side.
	assert.Empty(t, svc.api.(*MockAPI).GetCalls)
}

func TestConnectorService_SearchPages(t *testing.T) {
	api := &MockAPI{
		GetFunc: func(_ context.Context, path string, query url.Values, out any) error {
			assert.Equal(t, notionPagesPath, path)
			assert.Equal(t, "roadmap", query.Get("q"))
			*(out.(*[]notePageRow)) = []notePageRow{{ID: "p1", Title: "Roadmap 2026"}}
			return nil
		},
	}
	svc := NewConnectorService(api, &MockNavigator{}, nil)

	pages, err := svc.SearchPages(context.Background(), "roadmap")

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Roadmap 2026", pages[0].Title)
}

func TestConnectorService_ImportPages(t *testing.T) {
	api := &MockAPI{}
	svc := NewConnectorService(api, &MockNavigator{}, nil)
	svc.ResumeNotion()

	entries, err := svc.ImportPages(context.Background(), []domain.NotePage{
		{ID: "p1", Title: "Roadmap"},
		{ID: "p2", Title: "Minutes"},
	})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Roadmap", entries[0].Name)
	assert.Equal(t, []string{notionImportPath}, api.PostCalls)
	assert.Equal(t, domain.PhaseIdle, svc.Phase(domain.ConnectorNotion))
}

func TestConnectorService_ImportPages_EmptySelectionCancels(t *testing.T) {
	api := &MockAPI{}
	svc := NewConnectorService(api, &MockNavigator{}, nil)
	svc.ResumeNotion()

	_, err := svc.ImportPages(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrUserCancelled)
	assert.Empty(t, api.PostCalls)
	assert.Equal(t, domain.PhaseIdle, svc.Phase(domain.ConnectorNotion))
}

func TestConnectorService_CancelNotion(t *testing.T) {
	svc := NewConnectorService(&MockAPI{}, &MockNavigator{}, nil)
	svc.ResumeNotion()

	svc.CancelNotion()

	assert.Equal(t, domain.PhaseIdle, svc.Phase(domain.ConnectorNotion))
}
