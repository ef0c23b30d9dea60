package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdocs-cli/internal/core/domain"
)

func TestConnect_DriveSuccess(t *testing.T) {
	withServices(t, Services{
		Corpus: &mockCorpusService{
			ListFunc: func(_ context.Context) ([]domain.KnowledgeEntry, error) {
				return make([]domain.KnowledgeEntry, 5), nil
			},
		},
		Connector: &mockConnectorService{
			ConnectDriveFunc: func(_ context.Context) ([]domain.KnowledgeEntry, error) {
				return []domain.KnowledgeEntry{
					{Name: "slides.pdf"},
					{Name: "budget.xlsx"},
				}, nil
			},
		},
		Resume: &mockResumeController{},
	})

	out, err := executeCommand(t, "connect", "drive")

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 from Drive")
	assert.Contains(t, out, "slides.pdf")
	assert.Contains(t, out, "Corpus now holds 5 documents.")
}

func TestConnect_DriveRedirectIsNotAnError(t *testing.T) {
	withServices(t, Services{
		Connector: &mockConnectorService{
			ConnectDriveFunc: func(_ context.Context) ([]domain.KnowledgeEntry, error) {
				return nil, domain.ErrAuthRedirect
			},
		},
		Resume: &mockResumeController{},
	})

	out, err := executeCommand(t, "connect", "drive")

	require.NoError(t, err)
	assert.Contains(t, out, "Authorization needed")
}

func TestConnect_DriveCancelled(t *testing.T) {
	withServices(t, Services{
		Connector: &mockConnectorService{
			ConnectDriveFunc: func(_ context.Context) ([]domain.KnowledgeEntry, error) {
				return nil, domain.ErrUserCancelled
			},
		},
		Resume: &mockResumeController{},
	})

	out, err := executeCommand(t, "connect", "drive")

	require.NoError(t, err)
	assert.Contains(t, out, "Selection cancelled.")
}

func TestConnect_DriveImportKeptDespiteError(t *testing.T) {
	withServices(t, Services{
		Connector: &mockConnectorService{
			ConnectDriveFunc: func(_ context.Context) ([]domain.KnowledgeEntry, error) {
				return []domain.KnowledgeEntry{{Name: "partial.doc"}}, domain.ErrNetworkUnavailable
			},
		},
		Resume: &mockResumeController{},
	})

	out, err := executeCommand(t, "connect", "drive")

	require.Error(t, err)
	assert.Contains(t, out, "partial.doc")
}

func TestConnect_UnknownSource(t *testing.T) {
	withServices(t, Services{
		Connector: &mockConnectorService{},
		Resume:    &mockResumeController{},
	})

	_, err := executeCommand(t, "connect", "dropbox")

	require.Error(t, err)
}

func TestConnect_ConsumesResumeMarkerFirst(t *testing.T) {
	consumed := false
	withServices(t, Services{
		Connector: &mockConnectorService{},
		Resume: &mockResumeController{
			ConsumeFunc: func() (domain.ConnectorKind, bool, error) {
				consumed = true
				return domain.ConnectorDrive, true, nil
			},
		},
	})

	_, err := executeCommand(t, "connect", "drive")

	require.NoError(t, err)
	assert.True(t, consumed)
}

func TestConnect_BusyConnector(t *testing.T) {
	withServices(t, Services{
		Connector: &mockConnectorService{
			ConnectDriveFunc: func(_ context.Context) ([]domain.KnowledgeEntry, error) {
				return nil, domain.ErrConnectorBusy
			},
		},
		Resume: &mockResumeController{},
	})

	_, err := executeCommand(t, "connect", "drive")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}
