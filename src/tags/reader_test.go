package tags_test

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"

	"github.com/ironsmile/coverscan/src/assert"
	"github.com/ironsmile/coverscan/src/tags"
)

// fakeJPEG is a byte string with a valid JPEG signature, long enough to pass
// any signature check.
var fakeJPEG = append(
	[]byte{0xff, 0xd8, 0xff, 0xe0},
	[]byte("not really pixel data but who is checking")...,
)

// TestEmbeddedImageFromID3 builds a minimal ID3v2.3 tagged file with an APIC
// frame and checks that exactly the picture bytes are returned.
func TestEmbeddedImageFromID3(t *testing.T) {
	appFS := afero.NewMemMapFs()

	fileData := id3v2File(
		textFrame("TALB", "Powerslave"),
		textFrame("TPE1", "Iron Maiden"),
		apicFrame(fakeJPEG),
	)
	err := afero.WriteFile(appFS, "/music/track.mp3", fileData, 0644)
	assert.NilErr(t, err)

	reader := tags.NewFileReader(appFS)

	img := reader.EmbeddedImage("/music/track.mp3")
	if !bytes.Equal(fakeJPEG, img) {
		t.Errorf("extracted image bytes differ from the embedded ones")
	}
}

// TestEmbeddedImageAbsent checks files without pictures and files which are
// not audio at all. Both should result in "no image", not a crash or panic.
func TestEmbeddedImageAbsent(t *testing.T) {
	appFS := afero.NewMemMapFs()

	noArt := id3v2File(textFrame("TALB", "No Artwork Here"))
	assert.NilErr(t, afero.WriteFile(appFS, "/music/plain.mp3", noArt, 0644))
	assert.NilErr(t, afero.WriteFile(
		appFS, "/music/garbage.mp3",
		[]byte("not a media file in any format"), 0644,
	))

	reader := tags.NewFileReader(appFS)

	if img := reader.EmbeddedImage("/music/plain.mp3"); img != nil {
		t.Errorf("got an image from a file without pictures")
	}

	if img := reader.EmbeddedImage("/music/garbage.mp3"); img != nil {
		t.Errorf("got an image from a file which is not audio")
	}

	if img := reader.EmbeddedImage("/music/missing.mp3"); img != nil {
		t.Errorf("got an image from a file which does not exist")
	}
}

// TestAlbumArtist checks the text tag extraction and the albumartist
// priority over the track artist.
func TestAlbumArtist(t *testing.T) {
	appFS := afero.NewMemMapFs()

	withAlbumArtist := id3v2File(
		textFrame("TALB", "The Wall"),
		textFrame("TPE1", "Roger Waters"),
		textFrame("TPE2", "Pink Floyd"),
	)
	assert.NilErr(t, afero.WriteFile(appFS, "/aa.mp3", withAlbumArtist, 0644))

	trackArtistOnly := id3v2File(
		textFrame("TALB", "Animals"),
		textFrame("TPE1", "Pink Floyd"),
	)
	assert.NilErr(t, afero.WriteFile(appFS, "/ta.mp3", trackArtistOnly, 0644))

	assert.NilErr(t, afero.WriteFile(
		appFS, "/garbage.mp3", []byte("no tags whatsoever"), 0644,
	))

	reader := tags.NewFileReader(appFS)

	album, artist := reader.AlbumArtist("/aa.mp3")
	assert.Equal(t, "The Wall", album)
	assert.Equal(t, "Pink Floyd", artist, "albumartist should win over artist")

	album, artist = reader.AlbumArtist("/ta.mp3")
	assert.Equal(t, "Animals", album)
	assert.Equal(t, "Pink Floyd", artist)

	album, artist = reader.AlbumArtist("/garbage.mp3")
	assert.Equal(t, "", album)
	assert.Equal(t, "", artist)
}

// The helpers below construct just enough of an ID3v2.3 tag for the parsing
// library to recognize the frames used in the tests.

// id3v2File returns a byte string starting with an ID3v2.3 header followed
// by the given frames.
func id3v2File(frames ...[]byte) []byte {
	var body bytes.Buffer
	for _, frame := range frames {
		body.Write(frame)
	}

	header := []byte{'I', 'D', '3', 0x03, 0x00, 0x00}
	header = append(header, synchsafe(body.Len())...)

	out := append(header, body.Bytes()...)

	// A couple of bytes of fake audio data after the tag.
	return append(out, 0xff, 0xfb, 0x90, 0x00)
}

// textFrame returns an ID3v2.3 text frame with ISO-8859-1 encoding.
func textFrame(id, text string) []byte {
	body := append([]byte{0x00}, []byte(text)...)
	return frame(id, body)
}

// apicFrame returns an ID3v2.3 attached picture frame holding img as a
// front cover JPEG.
func apicFrame(img []byte) []byte {
	var body bytes.Buffer
	body.WriteByte(0x00)               // text encoding
	body.WriteString("image/jpeg")     // MIME type
	body.WriteByte(0x00)               // MIME terminator
	body.WriteByte(0x03)               // picture type: front cover
	body.WriteByte(0x00)               // empty description terminator
	body.Write(img)

	return frame("APIC", body.Bytes())
}

// frame wraps body into a v2.3 frame header. Note that in contrast with the
// tag header, v2.3 frame sizes are plain big endian, not synchsafe.
func frame(id string, body []byte) []byte {
	out := []byte(id)
	size := len(body)
	out = append(out,
		byte(size>>24), byte(size>>16), byte(size>>8), byte(size),
		0x00, 0x00, // frame flags
	)
	return append(out, body...)
}

// synchsafe encodes n into the 4-byte 7-bits-per-byte form used by ID3v2
// tag headers.
func synchsafe(n int) []byte {
	return []byte{
		byte(n >> 21 & 0x7f),
		byte(n >> 14 & 0x7f),
		byte(n >> 7 & 0x7f),
		byte(n & 0x7f),
	}
}
