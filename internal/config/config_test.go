package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"SOURCE", "USER_AGENT", "COOKIE", "COOKIE_FILE", "TIMEOUT_SECONDS",
		"DEBUG", "LOG_FORMAT", "CLOUDFLARE_BYPASS", "SITES_FILE"} {
		t.Setenv(envPrefix+k, "")
	}
	return dir
}

func TestLoadMergedDefaults(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{EnvFile: filepath.Join(t.TempDir(), "none.env")})
	require.NoError(t, err)
	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.Debug)
}

func TestLoadMergedLayers(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)

	profile := DefaultConfig()
	profile.Source = "ja.rawkuro"
	profile.UserAgent = "profile-agent"
	profile.TimeoutSeconds = 10
	require.NoError(t, SaveYAML(profile, path))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MANGASRC_USER_AGENT=env-agent\nMANGASRC_CLOUDFLARE_BYPASS=true\n"), 0o644))
	t.Cleanup(func() {
		_ = os.Unsetenv(envPrefix + "USER_AGENT")
		_ = os.Unsetenv(envPrefix + "CLOUDFLARE_BYPASS")
	})
	// godotenv never overrides variables that are already set.
	require.NoError(t, os.Unsetenv(envPrefix+"USER_AGENT"))
	require.NoError(t, os.Unsetenv(envPrefix+"CLOUDFLARE_BYPASS"))

	cfg, used, err := LoadMerged(Options{EnvFile: envFile, TimeoutSeconds: 5, LogFormat: "json"})
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, "ja.rawkuro", cfg.Source)
	assert.Equal(t, "env-agent", cfg.UserAgent)
	assert.True(t, cfg.CloudflareBypass)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	isolate(t)
	t.Setenv(envPrefix+"SOURCE", "zh.boylove")

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, Debug: true, EnvFile: "missing.env"})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, "zh.boylove", cfg.Source)
	assert.True(t, cfg.Debug)
}

func TestLoadMergedRejectsLogFormat(t *testing.T) {
	isolate(t)

	_, _, err := LoadMerged(Options{IgnoreConfig: true, LogFormat: "xml", EnvFile: "missing.env"})
	assert.ErrorContains(t, err, "invalid log_format")
}

func TestProfiles(t *testing.T) {
	root := isolate(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)
	_, err = CreateEmptyConfig("work")
	require.NoError(t, err)

	require.NoError(t, SwitchConfig("work"))
	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "work", label)

	require.NoError(t, RenameConfig("work", "office"))
	label, _ = CurrentLabel()
	assert.Equal(t, "office", label)

	path, err := ConfigPathByLabel("office")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "mangasrc", "configs", "office.yaml"), path)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.True(t, list[1].Active)

	fellBack, err := RemoveConfig("office")
	require.NoError(t, err)
	assert.True(t, fellBack)
	label, _ = CurrentLabel()
	assert.Equal(t, DefaultLabel, label)

	_, err = RemoveConfig(DefaultLabel)
	assert.Error(t, err)
	_, err = ConfigPathByLabel("office")
	assert.Error(t, err)
}

func TestProfileLabels(t *testing.T) {
	isolate(t)

	_, err := CreateEmptyConfig("../escape")
	assert.ErrorContains(t, err, "invalid label")
	_, err = CreateEmptyConfig("  ")
	assert.ErrorContains(t, err, "label cannot be empty")

	_, err = CreateEmptyConfig("work")
	require.NoError(t, err)
	_, err = CreateEmptyConfig("work")
	assert.ErrorIs(t, err, ErrProfileExists)

	assert.ErrorIs(t, SwitchConfig("missing"), ErrProfileMissing)

	src := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(src, []byte("source: [unclosed"), 0o644))
	assert.Error(t, AddConfig("bad", src))
	_, err = ConfigPathByLabel("bad")
	assert.ErrorIs(t, err, ErrProfileMissing)
}
