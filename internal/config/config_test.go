package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"measurement": { "snapMode": "face", "snapDistance": 0.5, "lineColor": "#ff0000" },
		"viewer": { "width": 800 }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, 800, GetInt("viewer.width"))
	assert.Equal(t, 900, GetInt("viewer.height"))

	o, err := DefaultOptions()
	require.NoError(t, err)
	assert.Equal(t, measurement.SnapFace, o.SnapMode)
	assert.Equal(t, 0.5, o.SnapDistance)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, o.LineColor)
	assert.Equal(t, "JetBrains Mono", o.FontFamily)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{}`), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, "#64c8ff", GetString("measurement.lineColor"))
	assert.Equal(t, "vertex", GetString("measurement.snapMode"))
	assert.Equal(t, true, viper.GetBool("measurement.snapEnabled"))
	assert.Equal(t, false, viper.GetBool("measurement.dynamic"))
	assert.Equal(t, 1400, GetInt("viewer.width"))

	o, err := DefaultOptions()
	require.NoError(t, err)
	want := measurement.DefaultOptions()
	assert.Equal(t, want.LineColor, o.LineColor)
	assert.Equal(t, want.LabelColor, o.LabelColor)
	assert.Equal(t, want.SnapMode, o.SnapMode)
	assert.Equal(t, want.SnapDistance, o.SnapDistance)
	assert.Equal(t, want.LineWidth, o.LineWidth)
	assert.Equal(t, want.FontSize, o.FontSize)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.Equal(t, "info", GetString("logLevel"), "defaults apply without a file")
}

func TestDefaultOptions_InvalidValues(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()

	viper.Set("measurement.snapMode", "magnetic")
	_, err := DefaultOptions()
	assert.ErrorContains(t, err, "measurement.snapMode")

	viper.Set("measurement.snapMode", "vertex")
	viper.Set("measurement.labelColor", "white")
	_, err = DefaultOptions()
	assert.ErrorContains(t, err, "measurement.labelColor")
}
