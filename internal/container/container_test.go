package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"catalog/navigator/internal/config"
	"catalog/navigator/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return &config.Config{
		Source:    config.SourceConfig{File: path, Format: "json"},
		Navigator: config.NavigatorConfig{MaxVisibleLevels: 3, SearchLimit: 5, SuggestionLimit: 3},
		Session:   config.SessionConfig{Owner: "test"},
	}
}

func TestNew_FileSourceWithoutBackends(t *testing.T) {
	cfg := fileConfig(t, `[{"id": "a", "name": "Apparel", "children": [{"id": "b", "name": "Boots"}]}]`)

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Repository)
	assert.IsType(t, queue.NopPublisher{}, app.Publisher)
	assert.Equal(t, cfg.Source.File, app.Source.Name())

	controller, err := app.Service.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, controller.Catalog().Len())
	assert.Equal(t, 3, controller.Catalog().MaxVisibleLevels())

	boots, ok := controller.Catalog().Lookup("b")
	require.True(t, ok)
	selection, err := app.Service.Commit(context.Background(), controller, boots)
	require.NoError(t, err)
	assert.Equal(t, "Apparel > Boots", selection.Breadcrumb)
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := New(context.Background(), &config.Config{})
	assert.ErrorContains(t, err, "no category source configured")
}

func TestNew_HTTPSourceWithoutProxies(t *testing.T) {
	cfg := &config.Config{
		Source:    config.SourceConfig{URL: "http://categories.invalid/api", Format: "json", Timeout: 1},
		Navigator: config.NavigatorConfig{MaxVisibleLevels: 4, SearchLimit: 5},
	}

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()
	assert.Equal(t, "http://categories.invalid/api", app.Source.Name())
}
