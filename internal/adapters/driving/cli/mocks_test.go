package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

// Test doubles for the driving ports.

type mockChatService struct {
	SendFunc func(ctx context.Context, message string) (string, error)
}

func (m *mockChatService) Send(ctx context.Context, message string) (string, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, message)
	}
	return "", nil
}

type mockCorpusService struct {
	ListFunc   func(ctx context.Context) ([]domain.KnowledgeEntry, error)
	SearchFunc func(ctx context.Context, query string) ([]domain.KnowledgeEntry, error)
	IngestFunc func(ctx context.Context, path string) error
}

func (m *mockCorpusService) List(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockCorpusService) Search(ctx context.Context, query string) ([]domain.KnowledgeEntry, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockCorpusService) Ingest(ctx context.Context, path string) error {
	if m.IngestFunc != nil {
		return m.IngestFunc(ctx, path)
	}
	return nil
}

type mockConnectorService struct {
	PhaseFunc        func(kind domain.ConnectorKind) domain.ConnectorPhase
	ConnectDriveFunc func(ctx context.Context) ([]domain.KnowledgeEntry, error)
	BeginNotionFunc  func(ctx context.Context) error
	ResumeNotionFunc func()
	SearchPagesFunc  func(ctx context.Context, query string) ([]domain.NotePage, error)
	ImportPagesFunc  func(ctx context.Context, pages []domain.NotePage) ([]domain.KnowledgeEntry, error)
	CancelNotionFunc func()
}

func (m *mockConnectorService) Phase(kind domain.ConnectorKind) domain.ConnectorPhase {
	if m.PhaseFunc != nil {
		return m.PhaseFunc(kind)
	}
	return domain.PhaseIdle
}

func (m *mockConnectorService) ConnectDrive(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	if m.ConnectDriveFunc != nil {
		return m.ConnectDriveFunc(ctx)
	}
	return nil, nil
}

func (m *mockConnectorService) BeginNotion(ctx context.Context) error {
	if m.BeginNotionFunc != nil {
		return m.BeginNotionFunc(ctx)
	}
	return nil
}

func (m *mockConnectorService) ResumeNotion() {
	if m.ResumeNotionFunc != nil {
		m.ResumeNotionFunc()
	}
}

func (m *mockConnectorService) SearchPages(ctx context.Context, query string) ([]domain.NotePage, error) {
	if m.SearchPagesFunc != nil {
		return m.SearchPagesFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockConnectorService) ImportPages(ctx context.Context, pages []domain.NotePage) ([]domain.KnowledgeEntry, error) {
	if m.ImportPagesFunc != nil {
		return m.ImportPagesFunc(ctx, pages)
	}
	return nil, nil
}

func (m *mockConnectorService) CancelNotion() {
	if m.CancelNotionFunc != nil {
		m.CancelNotionFunc()
	}
}

type mockResumeController struct {
	ConsumeFunc func() (domain.ConnectorKind, bool, error)
}

func (m *mockResumeController) Consume() (domain.ConnectorKind, bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc()
	}
	return "", false, nil
}

// withServices installs test doubles and restores the previous wiring
// when the test ends.
func withServices(t *testing.T, s Services) {
	t.Helper()
	prev := Services{
		Chat:      chatService,
		Corpus:    corpusService,
		Connector: connectorService,
		Resume:    resumeController,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(prev) })
}

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
