package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curata/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
	"github.com/custodia-labs/curata/internal/core/services"
)

// mockIngestService implements driving.IngestService for testing.
type mockIngestService struct {
	result   *driving.IngestResult
	err      error
	prompts  []string
	imported []string
}

func (m *mockIngestService) Submit(_ context.Context, promptName string) (*driving.IngestResult, error) {
	m.prompts = append(m.prompts, "name:"+promptName)
	return m.result, m.err
}

func (m *mockIngestService) SubmitText(_ context.Context, prompt string) (*driving.IngestResult, error) {
	m.prompts = append(m.prompts, "text:"+prompt)
	return m.result, m.err
}

func (m *mockIngestService) Import(_ context.Context, raw string) (*driving.IngestResult, error) {
	m.imported = append(m.imported, raw)
	return m.result, m.err
}

// mockExportService implements driving.ExportService for testing.
type mockExportService struct {
	rows   []domain.ExportRow
	result *driving.ExportResult
	err    error
}

func (m *mockExportService) SelectReady(_ context.Context) ([]domain.ExportRow, error) {
	return m.rows, m.err
}

func (m *mockExportService) ExportReady(_ context.Context) (*driving.ExportResult, error) {
	return m.result, m.err
}

func (m *mockExportService) ExportPublished(_ context.Context) (*driving.ExportResult, error) {
	return m.result, m.err
}

// newTestPorts wires real lifecycle and tag services over memory stores.
func newTestPorts(t *testing.T, drafts ...domain.Post) *Ports {
	t.Helper()
	repo := memory.NewPostStore()
	require.NoError(t, repo.Save(context.Background(), domain.CollectionUnpublished, drafts))
	return &Ports{
		Lifecycle: services.NewLifecycleService(repo),
		Tags:      services.NewTagService(memory.NewTagStore()),
	}
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}
