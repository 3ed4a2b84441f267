package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parsekit/pkg/nonempty"
	"parsekit/pkg/uniquemap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parsekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		t.Setenv("CONFIG_DIRS", "")
		t.Setenv("CACHE_LOG_LEVEL", "")

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Empty(t, cfg.Cache.Directories)
	})

	t.Run("reads yaml", func(t *testing.T) {
		t.Setenv("CONFIG_DIRS", "")
		t.Setenv("CACHE_LOG_LEVEL", "")

		path := writeConfig(t, `
cache:
  directories:
    - /etc/app
    - /usr/share/app
  attributes:
    - name: owner
      value: platform
logging:
  level: debug
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"/etc/app", "/usr/share/app"}, cfg.Cache.Directories)
		assert.Equal(t, "debug", cfg.Logging.Level)
		require.Len(t, cfg.Cache.Attributes, 1)
		assert.Equal(t, "owner", cfg.Cache.Attributes[0].Name)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		path := writeConfig(t, "cache: [not a mapping")
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("CONFIG_DIRS replaces the file list", func(t *testing.T) {
		t.Setenv("CONFIG_DIRS", "/a,/b")
		t.Setenv("CACHE_LOG_LEVEL", "")

		path := writeConfig(t, `
cache:
  directories: [/from/file]
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"/a", "/b"}, cfg.Cache.Directories)
	})

	t.Run("blank entries from stray commas are dropped", func(t *testing.T) {
		t.Setenv("CONFIG_DIRS", " /a, ,/b,")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, []string{"/a", "/b"}, cfg.Cache.Directories)
	})

	t.Run("CACHE_LOG_LEVEL overrides level", func(t *testing.T) {
		t.Setenv("CONFIG_DIRS", "")
		t.Setenv("CACHE_LOG_LEVEL", "warn")

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "warn", cfg.Logging.Level)
	})
}

func TestConfigDirs(t *testing.T) {
	t.Run("parses once into a non-empty sequence", func(t *testing.T) {
		cfg := &Config{Cache: CacheConfig{Directories: []string{"/primary", "/fallback"}}}

		dirs, err := cfg.ConfigDirs()
		require.NoError(t, err)

		assert.Equal(t, "/primary", dirs.Head())
		assert.Equal(t, []string{"/fallback"}, dirs.Tail())
	})

	t.Run("empty list fails at the boundary", func(t *testing.T) {
		cfg := &Config{}

		_, err := cfg.ConfigDirs()
		require.Error(t, err)
		assert.True(t, errors.Is(err, nonempty.ErrEmptyInput))
	})
}

func TestAttributeMap(t *testing.T) {
	t.Run("unique names parse into a map", func(t *testing.T) {
		cfg := &Config{Cache: CacheConfig{Attributes: []Attribute{
			{Name: "owner", Value: "platform"},
			{Name: "tier", Value: "gold"},
		}}}

		attrs, err := cfg.AttributeMap()
		require.NoError(t, err)

		assert.Equal(t, 2, attrs.Len())
		v, ok := attrs.Get("tier")
		require.True(t, ok)
		assert.Equal(t, "gold", v)
	})

	t.Run("duplicate names fail naming the attribute", func(t *testing.T) {
		cfg := &Config{Cache: CacheConfig{Attributes: []Attribute{
			{Name: "owner", Value: "platform"},
			{Name: "owner", Value: "infra"},
		}}}

		_, err := cfg.AttributeMap()
		require.Error(t, err)

		var dup *uniquemap.DuplicateKeyError[string]
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "owner", dup.Key)
	})
}
