package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curata/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/curata/internal/adapters/driving/cli"
	"github.com/custodia-labs/curata/internal/core/domain"
)

func TestResolveDataDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name       string
		flag       string
		configured string
		want       string
	}{
		{"flag wins", "/flag", "/configured", "/flag"},
		{"setting when no flag", "", "/configured", "/configured"},
		{"default under config dir", "", "", "/cfg/data"},
		{"home expanded", "", "~/posts", filepath.Join(home, "posts")},
		{"tilde alone", "~", "", home},
		{"tilde inside name kept", "~posts", "", "~posts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDataDir(cli.Options{DataDir: tt.flag}, tt.configured, "/cfg")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_WiresFileBackedServices(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	svc, err := Build(cli.Options{ConfigDir: configDir, DataDir: dataDir})
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	require.NotNil(t, svc.Lifecycle)
	require.NotNil(t, svc.Ingest)
	require.NotNil(t, svc.Media)
	require.NotNil(t, svc.Tags)
	require.NotNil(t, svc.Export)
	require.NotNil(t, svc.History)
	require.NotNil(t, svc.NewWatcher)
	assert.NotEmpty(t, svc.Warnings)

	ctx := context.Background()
	require.NoError(t, svc.Lifecycle.Create(ctx, domain.Post{Title: "A", Caption: "c"}))
	assert.FileExists(t, filepath.Join(dataDir, jsonfile.UnpublishedFile))
	assert.FileExists(t, filepath.Join(dataDir, "history.db"))

	w, err := svc.NewWatcher()
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}

func TestBuild_GenerationDisabledWithoutProvider(t *testing.T) {
	svc, err := Build(cli.Options{ConfigDir: t.TempDir(), DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	_, err = svc.Ingest.SubmitText(context.Background(), "hello")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
