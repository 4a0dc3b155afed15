package art

import (
	"context"
	"errors"
)

// ErrImageNotFound is returned by the Get* functions when no suitable cover
// image was found anywhere.
var ErrImageNotFound = errors.New("image not found")

// ErrInvalidPayload is returned when the catalog pointed to something which
// turned out not to be an image once downloaded.
var ErrInvalidPayload = errors.New("downloaded payload is not an image")

//counterfeiter:generate . Finder

// Finder defines a type which is capable of finding album cover art.
//
// Implementations return the image bytes on success. On failure the error is
// either ErrImageNotFound, ErrInvalidPayload or a wrapped transport error.
// Timeouts surface as wrapped context.DeadlineExceeded. Callers are expected
// to treat every error as "no artwork", nothing here is fatal.
type Finder interface {
	// GetFrontImage returns the front album artwork for particular album
	// by an artist.
	GetFrontImage(ctx context.Context, artist, album string) ([]byte, error)
}
