package confkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("CONF_DIR", "nested")
	t.Setenv("CONF_ABS", "/srv/conf")

	tests := []struct {
		name string
		file string
		want string
	}{
		{"absolute", "/absolute/path/file.yaml", "/absolute/path/file.yaml"},
		{"relative", "config/file.yaml", "/base/dir/config/file.yaml"},
		{"relative with env", "${CONF_DIR}/file.yaml", "/base/dir/nested/file.yaml"},
		{"env expands to absolute", "$CONF_ABS/market.yaml", "/srv/conf/market.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath("/base/dir", tt.file))
		})
	}
}

func TestBaseDir(t *testing.T) {
	assert.Equal(t, "/etc/config", BaseDir("/etc/config/app.yaml"))
	assert.Equal(t, "/", BaseDir("/app.yaml"))
	assert.Equal(t, "config", BaseDir("config/app.yaml"))
}

func TestSectionHydrate(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		section := &Section[string]{}
		err := section.Hydrate("/base", func(string) (*string, error) {
			t.Fatal("loader should not be called for empty file")
			return nil, nil
		})
		require.NoError(t, err)
		assert.Nil(t, section.Value)
	})

	t.Run("successful hydration", func(t *testing.T) {
		section := &Section[string]{File: "market.yaml"}
		want := "loaded"
		err := section.Hydrate("/base", func(path string) (*string, error) {
			assert.Equal(t, "/base/market.yaml", path)
			return &want, nil
		})
		require.NoError(t, err)
		require.NotNil(t, section.Value)
		assert.Equal(t, want, *section.Value)
		assert.Equal(t, "/base/market.yaml", section.File)
	})
}

func TestProjectRootFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(RootEnv, dir)

	root, err := ProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, dir, root)

	p, err := ProjectPath("etc/market.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "etc", "market.yaml"), p)
}

func TestFindUpStopsAtProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "etc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "etc", "market.yaml"), []byte("default: sim\n"), 0o644))
	nested := filepath.Join(root, "cmd", "jobs")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	dir, ok := findUp(nested, isProjectRoot)
	require.True(t, ok)
	assert.Equal(t, root, dir)
}
