package services

import (
	"context"
	"net/url"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

// MockAPI implements driven.API for testing.
type MockAPI struct {
	GetFunc       func(ctx context.Context, path string, query url.Values, out any) error
	PostFunc      func(ctx context.Context, path string, body any, out any) error
	UploadFunc    func(ctx context.Context, path, filePath string) error
	BootstrapFunc func(ctx context.Context) error

	GetCalls    []string
	PostCalls   []string
	UploadCalls []string
}

func (m *MockAPI) Get(ctx context.Context, path string, query url.Values, out any) error {
	m.GetCalls = append(m.GetCalls, path)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, path, query, out)
	}
	return nil
}

func (m *MockAPI) Post(ctx context.Context, path string, body any, out any) error {
	m.PostCalls = append(m.PostCalls, path)
	if m.PostFunc != nil {
		return m.PostFunc(ctx, path, body, out)
	}
	return nil
}

func (m *MockAPI) Upload(ctx context.Context, path, filePath string) error {
	m.UploadCalls = append(m.UploadCalls, path)
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, path, filePath)
	}
	return nil
}

func (m *MockAPI) Bootstrap(ctx context.Context) error {
	if m.BootstrapFunc != nil {
		return m.BootstrapFunc(ctx)
	}
	return nil
}

// MockNavigator implements driven.Navigator for testing.
type MockNavigator struct {
	CurrentURL   string
	CurrentErr   error
	ReplacedWith []string
	RedirectedTo []string
	ReplaceErr   error
	RedirectErr  error
}

func (m *MockNavigator) Current() (string, error) {
	return m.CurrentURL, m.CurrentErr
}

func (m *MockNavigator) Replace(rawURL string) error {
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	m.ReplacedWith = append(m.ReplacedWith, rawURL)
	m.CurrentURL = rawURL
	return nil
}

func (m *MockNavigator) Redirect(rawURL string) error {
	if m.RedirectErr != nil {
		return m.RedirectErr
	}
	m.RedirectedTo = append(m.RedirectedTo, rawURL)
	return nil
}

// MockFilePicker implements driven.FilePicker for testing.
type MockFilePicker struct {
	PickFunc func(ctx context.Context, token *oauth2.Token) ([]domain.PickedFile, error)
	Tokens   []string
}

func (m *MockFilePicker) Pick(ctx context.Context, token *oauth2.Token) ([]domain.PickedFile, error) {
	m.Tokens = append(m.Tokens, token.AccessToken)
	if m.PickFunc != nil {
		return m.PickFunc(ctx, token)
	}
	return nil, nil
}
