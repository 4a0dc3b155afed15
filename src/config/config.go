// Package config holds the per-invocation configuration of the scanner. There
// is no configuration file. Everything is decided by command line flags and
// the defaults below since a scan is a one-shot operation.
package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout is how long a single catalog network call is allowed to
// take before it is considered failed.
const DefaultTimeout = 12 * time.Second

// Catalog backends which may be used for downloading missing artwork.
const (
	SourceITunes      = "itunes"
	SourceMusicBrainz = "musicbrainz"
)

// DefaultExtensions are the file extensions treated as audio files when the
// user has not overridden them with the --extensions flag.
var DefaultExtensions = []string{
	".mp3", ".m4a", ".mp4", ".flac", ".ogg", ".oga", ".opus",
	".wma", ".wav", ".aiff", ".aif", ".ape", ".mka",
}

// Config is the fully resolved configuration for one run of the scanner.
type Config struct {
	// Root is the library directory which will be walked recursively.
	Root string

	// The independent actions performed for every album directory. At
	// least one of them must be enabled.
	ScanMissingCover       bool
	Extract                bool
	ReportMissingArtwork   bool
	DownloadMissingArtwork bool

	// DryRun suppresses all file writes. Writes are logged and counted as
	// if they have happened.
	DryRun bool

	// Verbose enables debug logging.
	Verbose bool

	// Extensions is the set of recognized audio file extensions. All keys
	// are lower case and start with a dot.
	Extensions map[string]struct{}

	// Source selects the catalog backend used by the download action.
	Source string

	// MaxSize, when positive, is the maximum width in pixels of written
	// cover files. Larger images are downscaled before writing.
	MaxSize int

	// Timeout is the per-call deadline for catalog network requests.
	Timeout time.Duration
}

// Default returns a Config with everything set to its default value. No
// actions are enabled so the result does not pass Validate as is.
func Default() *Config {
	return &Config{
		Extensions: NormalizeExtensions(DefaultExtensions),
		Source:     SourceITunes,
		Timeout:    DefaultTimeout,
	}
}

// SomeActionEnabled returns true when at least one of the action flags has
// been set. Running the scanner without any action is a usage error.
func (cfg *Config) SomeActionEnabled() bool {
	return cfg.ScanMissingCover || cfg.Extract ||
		cfg.ReportMissingArtwork || cfg.DownloadMissingArtwork
}

// Validate returns an error when the configuration does not describe a
// runnable scan.
func (cfg *Config) Validate() error {
	if !cfg.SomeActionEnabled() {
		return fmt.Errorf(
			"enable at least one action flag: --scan-missing-cover, " +
				"--extract, --report-missing-artwork or " +
				"--download-missing-artwork",
		)
	}

	if cfg.Source != SourceITunes && cfg.Source != SourceMusicBrainz {
		return fmt.Errorf("unknown catalog source %q", cfg.Source)
	}

	if cfg.MaxSize < 0 {
		return fmt.Errorf("--max-size must not be negative")
	}

	if len(cfg.Extensions) < 1 {
		return fmt.Errorf("the audio extensions set is empty")
	}

	return nil
}

// IsAudioExtension returns true when ext (in any case, with or without the
// leading dot) is part of the configured audio extension set.
func (cfg *Config) IsAudioExtension(ext string) bool {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	_, ok := cfg.Extensions[ext]
	return ok
}

// NormalizeExtensions converts a list of user supplied extensions into the
// canonical set form. Extensions are lowered and get a leading dot when one
// is missing. Empty entries are skipped.
func NormalizeExtensions(exts []string) map[string]struct{} {
	normalized := make(map[string]struct{}, len(exts))

	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[ext] = struct{}{}
	}

	return normalized
}

// ExtensionsFlag is a flag.Value which accumulates audio extensions. It
// accepts repeated flags as well as comma separated lists so that both
// `--extensions mp3 --extensions flac` and `--extensions mp3,flac` work.
type ExtensionsFlag []string

// String implements flag.Value.
func (e *ExtensionsFlag) String() string {
	return strings.Join(*e, ",")
}

// Set implements flag.Value.
func (e *ExtensionsFlag) Set(value string) error {
	for _, part := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		*e = append(*e, part)
	}
	return nil
}
