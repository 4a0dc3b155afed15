// Package tags reads embedded artwork and album identification out of audio
// file metadata. All format differences (ID3 picture frames, FLAC/Vorbis
// picture blocks, MP4 cover atoms) are handled here so that callers only ever
// see bytes and strings.
package tags

import (
	"sort"
	"strings"

	"github.com/dhowden/tag"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Reader is the tag reading interface used by the scanner. Failing to parse
// a file is not an error from the point of view of this interface. It is
// simply a file with no embedded image and no usable text tags.
type Reader interface {
	// EmbeddedImage returns the raw bytes of the first embedded picture
	// found in the file metadata or nil when there is none.
	EmbeddedImage(path string) []byte

	// AlbumArtist returns the album title and artist name stored in the
	// file metadata. Either may be empty when the corresponding tag is
	// missing.
	AlbumArtist(path string) (album, artist string)
}

// FileReader implements Reader on top of a filesystem and the tag parsing
// library.
type FileReader struct {
	fs afero.Fs
}

// NewFileReader returns a Reader which opens files from appFS.
func NewFileReader(appFS afero.Fs) *FileReader {
	return &FileReader{fs: appFS}
}

// EmbeddedImage implements Reader. The lookup order is fixed so that the
// same file always yields the same image: ID3 picture frames first, then the
// MP4 cover atom, then the generic picture accessor which covers FLAC and
// Vorbis picture blocks.
func (r *FileReader) EmbeddedImage(path string) []byte {
	meta := r.readMetadata(path)
	if meta == nil {
		return nil
	}

	if data := id3PictureFrame(meta); data != nil {
		return data
	}

	if data := mp4CoverAtom(meta); data != nil {
		return data
	}

	if pic := meta.Picture(); pic != nil && len(pic.Data) > 0 {
		return pic.Data
	}

	return nil
}

// AlbumArtist implements Reader. The artist is taken from the albumartist
// tag when present and from the track artist otherwise.
func (r *FileReader) AlbumArtist(path string) (album, artist string) {
	meta := r.readMetadata(path)
	if meta == nil {
		return "", ""
	}

	album = strings.TrimSpace(meta.Album())

	artist = strings.TrimSpace(meta.AlbumArtist())
	if artist == "" {
		artist = strings.TrimSpace(meta.Artist())
	}

	return album, artist
}

// readMetadata opens and parses a single audio file. Every failure is
// treated as "the file has no tags" and only logged at debug level because
// broken or unsupported files are completely expected in a music library.
func (r *FileReader) readMetadata(path string) tag.Metadata {
	file, err := r.fs.Open(path)
	if err != nil {
		log.Debug().Str("file", path).Err(err).Msg("could not open audio file")
		return nil
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		log.Debug().Str("file", path).Err(err).Msg("failed to read tags")
		return nil
	}

	return meta
}

// id3PictureFrame returns the data of the first APIC (or legacy PIC) frame
// of ID3 tagged files. Frame keys are visited in sorted order since the raw
// tag representation is a map with no order of its own.
func id3PictureFrame(meta tag.Metadata) []byte {
	raw := meta.Raw()
	keys := make([]string, 0, len(raw))
	for key := range raw {
		if strings.HasPrefix(key, "APIC") || strings.HasPrefix(key, "PIC") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		if data := pictureData(raw[key]); data != nil {
			return data
		}
	}

	return nil
}

// mp4CoverAtom returns the data of the `covr` atom of MP4 containers.
func mp4CoverAtom(meta tag.Metadata) []byte {
	raw := meta.Raw()
	return pictureData(raw["covr"])
}

// pictureData extracts image bytes from the dynamically typed values stored
// in the raw tag map.
func pictureData(val interface{}) []byte {
	switch pic := val.(type) {
	case *tag.Picture:
		if pic != nil && len(pic.Data) > 0 {
			return pic.Data
		}
	case tag.Picture:
		if len(pic.Data) > 0 {
			return pic.Data
		}
	case []byte:
		if len(pic) > 0 {
			return pic
		}
	}

	return nil
}
