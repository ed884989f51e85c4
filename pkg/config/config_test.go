package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATASET_PATH", "DATASET_WATCH", "SHOW_FILTER_PANEL", "SHOW_FOOTER", "PORT", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultDatasetPath, cfg.Dataset.Path)
	assert.False(t, cfg.Dataset.Watch)
	assert.True(t, cfg.Dashboard.ShowFilterPanel)
	assert.True(t, cfg.Dashboard.ShowFooter)
	assert.Equal(t, defaultFooterCaption, cfg.Dashboard.FooterCaption)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.JWT.SecretKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATASET_PATH", "/data/users.csv")
	t.Setenv("DATASET_WATCH", "true")
	t.Setenv("SHOW_FOOTER", "false")
	t.Setenv("SHOW_FILTER_PANEL", "0")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/users.csv", cfg.Dataset.Path)
	assert.True(t, cfg.Dataset.Watch)
	assert.False(t, cfg.Dashboard.ShowFooter)
	assert.False(t, cfg.Dashboard.ShowFilterPanel)
	assert.Equal(t, "9000", cfg.Server.Port)
}

func TestLoadInvalidBool(t *testing.T) {
	t.Setenv("SHOW_FOOTER", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHOW_FOOTER")
}
