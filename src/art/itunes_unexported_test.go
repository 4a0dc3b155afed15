package art

import "testing"

// TestSelectCandidate checks the candidate selection rules directly with all
// the interesting combinations of matching and non-matching results.
func TestSelectCandidate(t *testing.T) {
	withThumb := func(artist, album, thumb string) itunesAlbum {
		return itunesAlbum{
			ArtistName:     artist,
			CollectionName: album,
			ArtworkURL:     thumb,
		}
	}

	tests := []struct {
		desc     string
		results  []itunesAlbum
		artist   string
		album    string
		expected string
	}{
		{
			desc:     "no results",
			artist:   "a",
			album:    "b",
			expected: "",
		},
		{
			desc: "exact match preferred over earlier fallback",
			results: []itunesAlbum{
				withThumb("Tribute Band", "Hits", "first-thumb"),
				withThumb("The Artist", "The Album", "match-thumb"),
			},
			artist:   "the artist",
			album:    "the album",
			expected: "match-thumb",
		},
		{
			desc: "substring match is enough",
			results: []itunesAlbum{
				withThumb("The Artist", "The Album (Deluxe Edition)", "thumb"),
			},
			artist:   "artist",
			album:    "the album",
			expected: "thumb",
		},
		{
			desc: "empty artist matches any artist",
			results: []itunesAlbum{
				withThumb("Whoever", "The Album", "thumb"),
			},
			artist:   "",
			album:    "the album",
			expected: "thumb",
		},
		{
			desc: "falls back to the first result with a thumbnail",
			results: []itunesAlbum{
				withThumb("x", "y", ""),
				withThumb("Completely", "Unrelated", "fallback-thumb"),
				withThumb("The Artist", "", "never-reached"),
			},
			artist:   "the artist",
			album:    "the album",
			expected: "fallback-thumb",
		},
		{
			desc: "results without thumbnails are not candidates",
			results: []itunesAlbum{
				withThumb("The Artist", "The Album", ""),
			},
			artist:   "the artist",
			album:    "the album",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			actual := selectCandidate(test.results, test.artist, test.album)
			if actual != test.expected {
				t.Errorf("expected `%s` but got `%s`", test.expected, actual)
			}
		})
	}
}
