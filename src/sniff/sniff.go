// Package sniff recognizes common image formats by their magic bytes. It is
// used for deciding whether bytes pulled out of audio tags or downloaded from
// the internet are actually an image without paying for a full decode.
package sniff

import "bytes"

var (
	jpegMagic  = []byte{0xff, 0xd8, 0xff}
	pngMagic   = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	gif87Magic = []byte("GIF87a")
	gif89Magic = []byte("GIF89a")
	bmpMagic   = []byte("BM")
	riffMagic  = []byte("RIFF")
	webpMagic  = []byte("WEBP")
)

// LooksLikeImage returns true when data starts with the signature of one of
// the image formats which may realistically show up as album artwork: JPEG,
// PNG, GIF, BMP or WEBP. Inputs shorter than 12 bytes are rejected outright
// so that all signature checks below are in bounds.
func LooksLikeImage(data []byte) bool {
	if len(data) < 12 {
		return false
	}

	if bytes.HasPrefix(data, jpegMagic) {
		return true
	}
	if bytes.HasPrefix(data, pngMagic) {
		return true
	}
	if bytes.HasPrefix(data, gif87Magic) || bytes.HasPrefix(data, gif89Magic) {
		return true
	}
	if bytes.HasPrefix(data, bmpMagic) {
		return true
	}
	if bytes.Equal(data[0:4], riffMagic) && bytes.Equal(data[8:12], webpMagic) {
		return true
	}

	return false
}
