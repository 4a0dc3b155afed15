package sniff_test

import (
	"testing"

	"github.com/ironsmile/coverscan/src/sniff"
)

// TestLooksLikeImage checks that only the supported image signatures are
// recognized and that short or truncated inputs are always rejected.
func TestLooksLikeImage(t *testing.T) {
	pad := func(prefix []byte) []byte {
		return append(prefix, make([]byte, 20)...)
	}

	tests := []struct {
		desc     string
		data     []byte
		expected bool
	}{
		{
			desc:     "jpeg",
			data:     pad([]byte{0xff, 0xd8, 0xff, 0xe0}),
			expected: true,
		},
		{
			desc: "png",
			data: pad([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}),

			expected: true,
		},
		{
			desc:     "gif87a",
			data:     pad([]byte("GIF87a")),
			expected: true,
		},
		{
			desc:     "gif89a",
			data:     pad([]byte("GIF89a")),
			expected: true,
		},
		{
			desc:     "bmp",
			data:     pad([]byte("BM")),
			expected: true,
		},
		{
			desc:     "webp",
			data:     []byte("RIFF\x10\x00\x00\x00WEBPVP8 "),
			expected: true,
		},
		{
			desc:     "riff but not webp",
			data:     []byte("RIFF\x10\x00\x00\x00WAVEfmt "),
			expected: false,
		},
		{
			desc:     "plain text",
			data:     pad([]byte("this is not an image at all")),
			expected: false,
		},
		{
			desc:     "empty",
			data:     nil,
			expected: false,
		},
		{
			desc:     "too short even though it is a jpeg prefix",
			data:     []byte{0xff, 0xd8, 0xff},
			expected: false,
		},
		{
			desc:     "eleven bytes is still too short",
			data:     []byte("GIF89a12345"),
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			actual := sniff.LooksLikeImage(test.data)
			if actual != test.expected {
				t.Errorf("expected %t but got %t", test.expected, actual)
			}
		})
	}
}
