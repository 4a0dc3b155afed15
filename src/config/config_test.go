package config_test

import (
	"testing"

	"github.com/ironsmile/coverscan/src/assert"
	"github.com/ironsmile/coverscan/src/config"
)

// TestNormalizeExtensions makes sure all user supplied extensions end up
// lower case with a leading dot no matter how they were spelled.
func TestNormalizeExtensions(t *testing.T) {
	normalized := config.NormalizeExtensions([]string{
		"MP3", ".FLAC", "ogg", " .m4a ", "", ".",
	})

	expected := []string{".mp3", ".flac", ".ogg", ".m4a"}
	assert.Equal(t, len(expected), len(normalized))

	for _, ext := range expected {
		if _, ok := normalized[ext]; !ok {
			t.Errorf("expected %s to be part of the normalized set", ext)
		}
	}
}

// TestValidateRequiresAction checks that a configuration without any enabled
// action is rejected while any single action makes it valid.
func TestValidateRequiresAction(t *testing.T) {
	cfg := config.Default()
	assert.NotNilErr(t, cfg.Validate(), "no actions are enabled")

	actions := []func(*config.Config){
		func(c *config.Config) { c.ScanMissingCover = true },
		func(c *config.Config) { c.Extract = true },
		func(c *config.Config) { c.ReportMissingArtwork = true },
		func(c *config.Config) { c.DownloadMissingArtwork = true },
	}

	for i, enable := range actions {
		cfg := config.Default()
		enable(cfg)
		assert.NilErr(t, cfg.Validate(), "action %d should be enough", i)
	}
}

// TestValidateRejectsBadValues checks the catalog source and max size
// validations.
func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.Extract = true

	cfg.Source = "allmusic"
	assert.NotNilErr(t, cfg.Validate(), "unknown source accepted")

	cfg = config.Default()
	cfg.Extract = true
	cfg.MaxSize = -100
	assert.NotNilErr(t, cfg.Validate(), "negative max size accepted")

	cfg = config.Default()
	cfg.Extract = true
	cfg.Extensions = nil
	assert.NotNilErr(t, cfg.Validate(), "empty extension set accepted")
}

// TestIsAudioExtension checks extension membership in different spellings.
func TestIsAudioExtension(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		ext      string
		expected bool
	}{
		{".mp3", true},
		{"mp3", true},
		{".MP3", true},
		{"FLAC", true},
		{".txt", false},
		{"", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, cfg.IsAudioExtension(test.ext),
			"for extension %q", test.ext)
	}
}

// TestExtensionsFlag checks that the flag value accepts both repeated and
// comma separated extensions.
func TestExtensionsFlag(t *testing.T) {
	var flagVal config.ExtensionsFlag

	assert.NilErr(t, flagVal.Set("mp3,flac"))
	assert.NilErr(t, flagVal.Set("ogg"))
	assert.NilErr(t, flagVal.Set("wav m4a"))

	assert.Equal(t, 5, len(flagVal))
	assert.Equal(t, "mp3,flac,ogg,wav,m4a", flagVal.String())
}
