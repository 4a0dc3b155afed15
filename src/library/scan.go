package library

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Walk recursively processes every album directory at or under the
// configured root and returns the accumulated counters. Directories are
// visited depth-first with siblings in lexical order so repeated runs over
// the same tree produce the same report.
//
// The returned error is non-nil only when the root itself cannot be walked.
// Every per-directory and per-file failure is recovered, logged and counted.
func (w *Walker) Walk(ctx context.Context) (*ScanStats, error) {
	stats := &ScanStats{}
	var missing []string

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == w.cfg.Root {
				return err
			}
			log.Warn().Str("path", path).Err(err).Msg("skipping unreadable path")
			return nil
		}

		if !info.IsDir() {
			return nil
		}

		if !w.isAlbumDir(path) {
			return nil
		}

		w.processAlbumDir(ctx, path, stats, &missing)
		return nil
	}

	if err := afero.Walk(w.fs, w.cfg.Root, walkFn); err != nil {
		return nil, fmt.Errorf("walking %s: %w", w.cfg.Root, err)
	}

	w.printReport(stats, missing)

	return stats, nil
}

// printReport writes the missing artwork listing and the counter summary.
// Lines relevant only to disabled actions are omitted, the rest always come
// in the same fixed order.
func (w *Walker) printReport(stats *ScanStats, missing []string) {
	if w.cfg.ReportMissingArtwork {
		fmt.Fprintf(w.out, "\nDirectories with neither %s, %s nor embedded artwork:\n",
			CoverFile, ArtworkSentinelFile)

		if len(missing) > 0 {
			for _, dir := range missing {
				fmt.Fprintln(w.out, dir)
			}
		} else {
			fmt.Fprintln(w.out, "(none)")
		}
	}

	fmt.Fprintf(w.out, "\nSummary:\n")
	fmt.Fprintf(w.out, "Album directories scanned: %d\n", stats.AlbumDirsScanned)
	fmt.Fprintf(w.out, "Album directories with %s: %d\n", CoverFile, stats.AlbumDirsWithCover)
	fmt.Fprintf(w.out, "Album directories missing %s: %d\n", CoverFile, stats.AlbumDirsMissingCover)

	if w.cfg.Extract {
		written := "written"
		if w.cfg.DryRun {
			written = "to write"
		}
		fmt.Fprintf(w.out, "%s files %s: %d\n", CoverFile, written, stats.CoversExtracted)
		fmt.Fprintf(w.out, "Extraction failures/no embedded art: %d\n",
			stats.ExtractionFailures)
	}

	if w.cfg.DownloadMissingArtwork {
		downloaded := "downloaded"
		if w.cfg.DryRun {
			downloaded = "to download"
		}
		fmt.Fprintf(w.out, "Covers %s: %d\n", downloaded, stats.CoversDownloaded)
		fmt.Fprintf(w.out, "Download failures: %d\n", stats.DownloadFailures)
	}
}
