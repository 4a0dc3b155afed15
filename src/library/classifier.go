package library

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// isAlbumDir returns true when dir directly contains at least one regular
// file with a recognized audio extension. A directory which cannot be listed
// is not an album directory. That is all a permissions problem should cost,
// not the whole run.
func (w *Walker) isAlbumDir(dir string) bool {
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		log.Warn().Str("directory", dir).Err(err).
			Msg("skipping unreadable directory")
		return false
	}

	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		if w.cfg.IsAudioExtension(filepath.Ext(entry.Name())) {
			return true
		}
	}

	return false
}

// audioFiles returns the full paths of the audio files directly inside dir
// sorted by their lower cased base name. The sort makes the scanning order
// independent from whatever order the filesystem lists the directory in.
func (w *Walker) audioFiles(dir string) []string {
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		log.Debug().Str("directory", dir).Err(err).
			Msg("could not list directory for audio files")
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		if !w.cfg.IsAudioExtension(filepath.Ext(entry.Name())) {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, filepath.Join(dir, name))
	}

	return files
}
