package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, DefaultCellSize, cfg.Grid.CellSize)
	assert.Equal(t, DefaultHistoryLimit, cfg.Editor.HistoryLimit)
	assert.Equal(t, DefaultLanguage, cfg.Editor.Language)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
}

func TestApplyDefaults_PreserveExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.Editor.HistoryLimit = 99
	cfg.Editor.Language = "en"
	ApplyDefaults(cfg)

	assert.Equal(t, 99, cfg.Editor.HistoryLimit)
	assert.Equal(t, "en", cfg.Editor.Language)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Editor.View.ImplicitHydrogens)
	assert.True(t, cfg.Editor.View.FunctionalGroups)
}
