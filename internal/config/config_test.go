package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 5, cfg.GramWidth)
	assert.InDelta(t, 0.80, cfg.DataCutoffPercentage, 1e-9)
	assert.Equal(t, 100, cfg.DescriptionLimitBytes)
	assert.Equal(t, 3, cfg.SuggestionMinLen)
	assert.InDelta(t, 0.8, cfg.SuggestionThreshold, 1e-9)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadHonorsEnvOverrides(t *testing.T) {
	t.Setenv("GRAM_WIDTH", "7")
	t.Setenv("DATA_CUTOFF_PERCENTAGE", "0.5")
	t.Setenv("NODE_ENV", "production")

	cfg := Load()
	assert.Equal(t, 7, cfg.GramWidth)
	assert.InDelta(t, 0.5, cfg.DataCutoffPercentage, 1e-9)
	assert.True(t, cfg.IsProduction())
}

func TestLoadFallsBackOnUnparsableNumbers(t *testing.T) {
	t.Setenv("GRAM_WIDTH", "not-a-number")
	cfg := Load()
	assert.Equal(t, 5, cfg.GramWidth)
}
