package library

// ScanStats accumulates the counters printed in the summary at the end of a
// run. A ScanStats value is owned by exactly one Walker for the duration of
// one walk and is never touched by more than one goroutine.
type ScanStats struct {
	// AlbumDirsScanned is the number of directories classified as album
	// directories during the walk.
	AlbumDirsScanned int

	// AlbumDirsWithCover and AlbumDirsMissingCover split AlbumDirsScanned
	// by the presence of the cover file.
	AlbumDirsWithCover    int
	AlbumDirsMissingCover int

	// CoversExtracted is the number of covers written (or, in dry run,
	// which would have been written) from embedded artwork.
	CoversExtracted int

	// ExtractionFailures counts directories for which extraction was
	// attempted but no embedded art was found or the write failed.
	ExtractionFailures int

	// CoversDownloaded is the number of covers written (or, in dry run,
	// which would have been written) from a catalog lookup.
	CoversDownloaded int

	// DownloadFailures counts directories for which a catalog lookup was
	// attempted but found nothing or the write failed.
	DownloadFailures int
}
