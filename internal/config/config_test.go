package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./original_subtitles.ass", cfg.InputPath)
	assert.Equal(t, "./processed_subtitles.ass", cfg.OutputPath)
	assert.Equal(t, "utf-8", cfg.Encoding)
	assert.Equal(t, MissingMarkerError, cfg.MissingMarker)
	assert.False(t, cfg.Atomic)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty input", func(c *Config) { c.InputPath = "  " }, true},
		{"empty output", func(c *Config) { c.OutputPath = "" }, true},
		{"unknown encoding", func(c *Config) { c.Encoding = "klingon-8" }, true},
		{"empty encoding means utf-8", func(c *Config) { c.Encoding = "" }, false},
		{"latin1", func(c *Config) { c.Encoding = "windows-1252" }, false},
		{"unknown policy", func(c *Config) { c.MissingMarker = "skip" }, true},
		{"empty policy", func(c *Config) { c.MissingMarker = "" }, false},
		{"style-field policy", func(c *Config) { c.MissingMarker = MissingMarkerStyleField }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLookupEncoding(t *testing.T) {
	enc, err := LookupEncoding("")
	require.NoError(t, err)
	assert.Equal(t, unicode.UTF8, enc)

	enc, err = LookupEncoding(" UTF-8 ")
	require.NoError(t, err)
	assert.Equal(t, unicode.UTF8, enc)

	enc, err = LookupEncoding("windows-1252")
	require.NoError(t, err)
	assert.Equal(t, charmap.Windows1252, enc)

	_, err = LookupEncoding("nope")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseMissingMarker(t *testing.T) {
	tests := []struct {
		in      string
		want    MissingMarkerPolicy
		wantErr bool
	}{
		{"", MissingMarkerError, false},
		{"error", MissingMarkerError, false},
		{" ERROR ", MissingMarkerError, false},
		{"style-field", MissingMarkerStyleField, false},
		{"Style-Field", MissingMarkerStyleField, false},
		{"discard", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMissingMarker(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
