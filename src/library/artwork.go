package library

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ironsmile/coverscan/src/scaler"
	"github.com/ironsmile/coverscan/src/sniff"
)

// Names used when an album directory yields no identity of its own.
const (
	unknownAlbum  = "Unknown Album"
	unknownArtist = "Unknown Artist"
)

// processAlbumDir runs the enabled actions for a single album directory. No
// failure in here ever stops the walk. Everything is logged, counted and
// left behind.
func (w *Walker) processAlbumDir(
	ctx context.Context,
	dir string,
	stats *ScanStats,
	missing *[]string,
) {
	stats.AlbumDirsScanned++

	hasCover := w.fileExists(filepath.Join(dir, CoverFile))
	if hasCover {
		stats.AlbumDirsWithCover++
	} else {
		stats.AlbumDirsMissingCover++
		if w.cfg.ScanMissingCover {
			fmt.Fprintf(w.out, "MISSING %s: %s\n", CoverFile, dir)
		}
	}

	// The embedded art probe is shared by three actions and skipped
	// entirely when none of them needs it so that a pure --scan-missing-cover
	// run never parses a single tag.
	var embedded []byte
	if w.cfg.Extract || w.cfg.ReportMissingArtwork || w.cfg.DownloadMissingArtwork {
		embedded = w.firstEmbeddedImage(dir)
	}

	if w.cfg.Extract && !hasCover {
		if embedded != nil {
			if w.writeCover(dir, embedded) {
				stats.CoversExtracted++
			} else {
				stats.ExtractionFailures++
			}
		} else {
			stats.ExtractionFailures++
			log.Info().Str("directory", dir).
				Msg("no embedded art found for extraction")
		}
	}

	if w.cfg.ReportMissingArtwork {
		hasSentinel := w.fileExists(filepath.Join(dir, ArtworkSentinelFile))
		if !hasCover && !hasSentinel && embedded == nil {
			*missing = append(*missing, dir)
		}
	}

	if w.cfg.DownloadMissingArtwork && !hasCover && embedded == nil &&
		!w.fileExists(filepath.Join(dir, DownloadSentinelFile)) {
		w.downloadCover(ctx, dir, stats)
	}
}

// downloadCover asks the catalog for artwork and writes what it finds. One
// attempt, no retries. A directory which fails today may succeed on the next
// run when the catalog has caught up.
func (w *Walker) downloadCover(ctx context.Context, dir string, stats *ScanStats) {
	album, artist := w.albumIdentity(dir)

	img, err := w.finder.GetFrontImage(ctx, artist, album)
	if err != nil {
		stats.DownloadFailures++
		log.Debug().
			Str("directory", dir).
			Str("album", album).
			Str("artist", artist).
			Err(err).
			Msg("no artwork found in the catalog")
		return
	}

	if w.writeCover(dir, img) {
		stats.CoversDownloaded++
	} else {
		stats.DownloadFailures++
	}
}

// firstEmbeddedImage returns the first usable embedded image among the audio
// files of dir. Files are visited in case-insensitive name order so that the
// same directory always yields the same image no matter how the filesystem
// feels about listing order today.
func (w *Walker) firstEmbeddedImage(dir string) []byte {
	for _, file := range w.audioFiles(dir) {
		data := w.tags.EmbeddedImage(file)
		if data == nil {
			continue
		}
		if !sniff.LooksLikeImage(data) {
			log.Debug().Str("file", file).
				Msg("embedded bytes do not look like an image")
			continue
		}

		log.Debug().Str("file", file).Msg("found usable embedded artwork")
		return data
	}

	return nil
}

// albumIdentity derives the (album, artist) pair used as the catalog query
// for dir. The tags of the first audio file naming an album win. When no
// file does, the directory name stands in for the album and the parent
// directory name for the artist, which is exactly what they are in the usual
// artist/album library layout.
func (w *Walker) albumIdentity(dir string) (album, artist string) {
	for _, file := range w.audioFiles(dir) {
		fileAlbum, fileArtist := w.tags.AlbumArtist(file)
		if fileAlbum == "" {
			continue
		}

		album = fileAlbum
		artist = fileArtist
		break
	}

	if album == "" {
		album = dirBaseName(dir)
	}
	if album == "" {
		album = unknownAlbum
	}

	if artist == "" {
		artist = dirBaseName(filepath.Dir(dir))
	}
	if artist == "" {
		artist = unknownArtist
	}

	return album, artist
}

// writeCover stores data as the cover file of dir, honoring the dry run mode
// and the optional downscaling. It returns whether the cover was written or,
// in dry run, would have been.
func (w *Walker) writeCover(dir string, data []byte) bool {
	coverPath := filepath.Join(dir, CoverFile)

	if w.cfg.MaxSize > 0 {
		scaled, err := scaler.Scale(data, w.cfg.MaxSize)
		if err != nil {
			log.Warn().Str("cover", coverPath).Err(err).
				Msg("could not downscale artwork, writing the original")
		} else {
			data = scaled
		}
	}

	if w.cfg.DryRun {
		log.Info().Str("cover", coverPath).Msg("[dry-run] would write cover file")
		return true
	}

	if err := afero.WriteFile(w.fs, coverPath, data, 0644); err != nil {
		log.Error().Str("cover", coverPath).Err(err).Msg("failed writing cover file")
		return false
	}

	log.Info().Str("cover", coverPath).Msg("wrote cover file")
	return true
}

// fileExists returns true when path is an existing regular file.
func (w *Walker) fileExists(path string) bool {
	stat, err := w.fs.Stat(path)
	return err == nil && stat.Mode().IsRegular()
}

// dirBaseName returns the last path element of dir or empty when dir has no
// usable name of its own, e.g. the filesystem root.
func dirBaseName(dir string) string {
	base := filepath.Base(dir)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}
