// Package library implements the actual library audit. It walks a music
// library tree, decides which directories are album directories, resolves
// artwork for each of them according to the enabled actions and accumulates
// the counters for the final summary.
package library

import (
	"io"

	"github.com/spf13/afero"

	"github.com/ironsmile/coverscan/src/art"
	"github.com/ironsmile/coverscan/src/config"
	"github.com/ironsmile/coverscan/src/tags"
)

// File names which have a meaning during a scan.
const (
	// CoverFile is the canonical artwork file. It is what gets written by
	// the extract and download actions and what the scan action checks for.
	CoverFile = "cover.jpg"

	// ArtworkSentinelFile marks a directory as "has artwork" for the
	// missing artwork report even when there is no cover file.
	ArtworkSentinelFile = "artwork.jpg"

	// DownloadSentinelFile marks a directory as "do not download artwork
	// for me". Useful for compilations and bootlegs for which a catalog
	// lookup would only ever find wrong images.
	DownloadSentinelFile = "album.jpg"
)

// Walker performs one audit run over a library root. It is not safe for
// concurrent use and is not meant to be reused between runs.
type Walker struct {
	fs     afero.Fs
	tags   tags.Reader
	finder art.Finder
	cfg    *config.Config
	out    io.Writer
}

// New returns a Walker over appFS configured by cfg. Report output (the
// missing listings and the summary) is written to out. artFinder may be nil
// when the download action is not enabled.
func New(
	appFS afero.Fs,
	tagReader tags.Reader,
	artFinder art.Finder,
	cfg *config.Config,
	out io.Writer,
) *Walker {
	return &Walker{
		fs:     appFS,
		tags:   tagReader,
		finder: artFinder,
		cfg:    cfg,
		out:    out,
	}
}
