package art

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ironsmile/coverscan/src/sniff"
)

const (
	itunesSearchEndpoint = "%s/search"

	// The iTunes search API returns thumbnail sized artwork URLs. The
	// server happily serves other sizes when the size token in the URL is
	// replaced, which is what everyone does to get a usable cover.
	itunesLowResToken  = "100x100"
	itunesHighResToken = "600x600"

	itunesResultsLimit = "10"
)

// Client is a client for recovering album artwork from an iTunes compatible
// album search API. It implements Finder.
//
// Getting an image works in two steps:
//
// * The artist and album names are combined into one search query against
// the album search endpoint.
//
// * The thumbnail URL of the best matching result is rewritten to its high
// resolution form and downloaded. A result matches when its album name
// contains the searched album name and its artist name contains the searched
// artist. When no result matches this way the first result with a thumbnail
// at all is used. Albums get renamed on release in one region or another so
// an exact string match would miss perfectly good artwork.
type Client struct {
	httpClient *http.Client
	useragent  string
	timeout    time.Duration

	searchAPIHost string
}

// NewClient returns fully configured iTunes search API client.
//
// The timeout is applied to every network call separately. Zero or negative
// means no deadline which is almost never what you want for a tool which
// should make progress through a whole library.
func NewClient(useragent string, timeout time.Duration) *Client {
	return &Client{
		httpClient:    &http.Client{},
		useragent:     useragent,
		timeout:       timeout,
		searchAPIHost: "https://itunes.apple.com",
	}
}

// GetFrontImage implements Finder using the iTunes search API.
func (c *Client) GetFrontImage(
	ctx context.Context,
	artist,
	album string,
) ([]byte, error) {
	results, err := c.searchAlbums(ctx, artist, album)
	if err != nil {
		return nil, err
	}

	thumbURL := selectCandidate(results, artist, album)
	if thumbURL == "" {
		return nil, ErrImageNotFound
	}

	imgURL := strings.Replace(thumbURL, itunesLowResToken, itunesHighResToken, 1)

	img, err := c.downloadImage(ctx, imgURL)
	if err != nil {
		return nil, err
	}

	if !sniff.LooksLikeImage(img) {
		return nil, ErrInvalidPayload
	}

	log.Debug().
		Str("artist", artist).
		Str("album", album).
		Int("bytes", len(img)).
		Msg("downloaded artwork from the album search API")

	return img, nil
}

// searchAlbums queries the album search endpoint with the combined artist
// and album string and returns the decoded results.
func (c *Client) searchAlbums(
	ctx context.Context,
	artist,
	album string,
) ([]itunesAlbum, error) {
	term := strings.TrimSpace(strings.TrimSpace(artist) + " " + strings.TrimSpace(album))

	searchURL := fmt.Sprintf(itunesSearchEndpoint, c.searchAPIHost)
	req, err := http.NewRequest(http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating album search API req: %w", err)
	}

	query := req.URL.Query()
	query.Add("term", term)
	query.Add("entity", "album")
	query.Add("media", "music")
	query.Add("limit", itunesResultsLimit)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", c.useragent)

	ctx, cancel := c.callContext(ctx)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("album search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("album search API returned HTTP %d", resp.StatusCode)
	}

	var decoded itunesSearchResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding album search API response: %w", err)
	}

	return decoded.Results, nil
}

// downloadImage gets a single image over HTTP.
func (c *Client) downloadImage(ctx context.Context, imgURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, imgURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating artwork req: %w", err)
	}
	req.Header.Set("User-Agent", c.useragent)

	ctx, cancel := c.callContext(ctx)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("artwork request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork server returned HTTP %d", resp.StatusCode)
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading artwork response: %w", err)
	}

	return img, nil
}

// callContext derives the per-call deadline context.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// selectCandidate picks the thumbnail URL of the most suitable search result.
// Results without a thumbnail are never candidates.
func selectCandidate(results []itunesAlbum, artist, album string) string {
	var fallback string

	for _, result := range results {
		if result.ArtworkURL == "" {
			continue
		}

		if fallback == "" {
			fallback = result.ArtworkURL
		}

		if !containsFold(result.CollectionName, album) {
			continue
		}
		if artist != "" && !containsFold(result.ArtistName, artist) {
			continue
		}

		return result.ArtworkURL
	}

	return fallback
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// The following are structures only used to decode the JSON response of the
// search API. Only the fields we are interested in and nothing more.
type itunesSearchResponse struct {
	ResultCount int           `json:"resultCount"`
	Results     []itunesAlbum `json:"results"`
}

type itunesAlbum struct {
	CollectionName string `json:"collectionName"`
	ArtistName     string `json:"artistName"`
	ArtworkURL     string `json:"artworkUrl100"`
}
