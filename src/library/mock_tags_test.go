package library_test

// mockTagReader implements tags.Reader from a couple of maps. The zero value
// behaves like a library full of files without any tags at all.
type mockTagReader struct {
	// images maps a file path to the embedded image bytes it yields.
	images map[string][]byte

	// identities maps a file path to its album and artist tags.
	identities map[string]albumArtist

	// calls counts every method invocation so tests can assert that tag
	// parsing did not happen when it should not have.
	calls int
}

type albumArtist struct {
	album  string
	artist string
}

func (m *mockTagReader) EmbeddedImage(path string) []byte {
	m.calls++
	return m.images[path]
}

func (m *mockTagReader) AlbumArtist(path string) (album, artist string) {
	m.calls++
	identity := m.identities[path]
	return identity.album, identity.artist
}
