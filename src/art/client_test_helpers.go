package art

// SetSearchAPIURL sets the album search API URL. Only useful for tests.
func (c *Client) SetSearchAPIURL(apiURL string) {
	c.searchAPIHost = apiURL
}

// SetCAAClient sets the underlying CAAClient which will be used by the
// MusicBrainzClient. Only useful for tests.
func (c *MusicBrainzClient) SetCAAClient(caac CAAClient) {
	c.caaClient = caac
}

// SetMusicBrainzAPIURL sets the MusicBrainz API URL. Only useful for tests.
func (c *MusicBrainzClient) SetMusicBrainzAPIURL(apiURL string) {
	c.musicBrainzAPIHost = apiURL
}
