package art

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	cca "gopkg.in/mineo/gocaa.v1"

	"github.com/ironsmile/coverscan/src/sniff"
)

const (
	musicBrainzReleaseEndpint    = "%s/ws/2/release/"
	musicBrainzReleaseQueryValue = "release:%s AND artist:%s"
)

// MusicBrainzClient recovers album artwork from the Cover Art Archive. It
// implements Finder.
//
// Getting an image works in two steps:
//
// * Gets a list of mbids (aka release IDs) from the MusicBrainz API which
// are above MinScore.
//
// * Uses the mbids for fetching a cover art from the Cover Art Archive. The
// first release ID which has a cover art wins.
//
// Why a list of mbids? Because a certain album may have many records in
// MusicBrainz which correspond to different releases for this album. Perhaps
// for multiple years or countries. Generally all releases have the same
// cover art. So we accept any of them.
type MusicBrainzClient struct {
	sync.Mutex

	// MinScore is the minimal accepted score above which a release is
	// considered a match for the search in the MusicBrainz API. The API
	// returns a list of matches and every one of them comes with a "score"
	// metric in 0-100 scale which represents how good a match this result
	// is for the query. 100 means absolutely sure. By lowering this score
	// you may receive more images but some of them may be inaccurate.
	MinScore int

	delay     time.Duration
	delayer   *time.Timer
	useragent string
	timeout   time.Duration
	caaClient CAAClient

	musicBrainzAPIHost string
}

// NewMusicBrainzClient returns fully configured MusicBrainzClient.
//
// The kind people at MusicBrainz provide their API at no cost for everyone
// to use. For that reason they have kindly asked for all applications to
// throttle their usage as much as possible and do not exceed one request
// per second. So we are good citizens and throttle ourselves. No more than
// one request per `delay` will be made.
// More info: https://musicbrainz.org/doc/XML_Web_Service/Rate_Limiting
//
// The `useragent` is used for representing ourselves when contacting the
// MusicBrainz API. It is required so that they can use it for throttling
// and filtering out bad applications.
func NewMusicBrainzClient(
	useragent string,
	delay time.Duration,
	timeout time.Duration,
) *MusicBrainzClient {
	return &MusicBrainzClient{
		MinScore:           95,
		useragent:          useragent,
		delay:              delay,
		delayer:            time.NewTimer(delay),
		timeout:            timeout,
		caaClient:          cca.NewCAAClient(useragent),
		musicBrainzAPIHost: "https://musicbrainz.org",
	}
}

// GetFrontImage implements Finder. It returns the front image for particular
// `album` from `artist`.
func (c *MusicBrainzClient) GetFrontImage(
	ctx context.Context,
	artist,
	album string,
) ([]byte, error) {
	mbIDs, err := c.getMusicBrainzReleaseIDs(ctx, artist, album)
	if err != nil {
		return nil, err
	}

	for _, mbidStr := range mbIDs {
		mbid := cca.StringToUUID(mbidStr)
		img, err := c.caaClient.GetReleaseFront(mbid, cca.ImageSize500)
		if err != nil {
			httpErr, ok := err.(cca.HTTPError)
			if ok && httpErr.StatusCode == http.StatusNotFound {
				continue
			}
			return nil, fmt.Errorf("cover art archive request: %w", err)
		}

		if !sniff.LooksLikeImage(img.Data) {
			return nil, ErrInvalidPayload
		}

		log.Debug().
			Str("artist", artist).
			Str("album", album).
			Str("mbid", mbidStr).
			Msg("downloaded artwork from the Cover Art Archive")

		return img.Data, nil
	}

	return nil, ErrImageNotFound
}

// getMusicBrainzReleaseIDs uses the MusicBrainz API to retrieve a list of
// matching MusicBrainzIDs (or mbid) for particular "release". Or album in
// the parlance of this program.
func (c *MusicBrainzClient) getMusicBrainzReleaseIDs(
	ctx context.Context,
	artist,
	album string,
) ([]string, error) {
	c.Lock()
	defer c.Unlock()

	<-c.delayer.C
	defer c.delayer.Reset(c.delay)

	mbURL := fmt.Sprintf(musicBrainzReleaseEndpint, c.musicBrainzAPIHost)
	req, err := http.NewRequest(http.MethodGet, mbURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating music brainz XML API req: %w", err)
	}

	query := req.URL.Query()
	query.Add("query", fmt.Sprintf(musicBrainzReleaseQueryValue, album, artist))
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", c.useragent)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req = req.WithContext(ctx)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("music brainz XML API returned HTTP %d", resp.StatusCode)
	}

	root := mbReleaseMetadata{}
	dec := xml.NewDecoder(resp.Body)

	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding music brainz XML API response: %w", err)
	}

	if len(root.RelaseList.Relases) < 1 {
		return nil, ErrImageNotFound
	}

	var releaseIDs []string
	for _, release := range root.RelaseList.Relases {
		if release.Score >= c.MinScore {
			releaseIDs = append(releaseIDs, release.ID)
		}
	}

	if len(releaseIDs) < 1 {
		return nil, ErrImageNotFound
	}

	return releaseIDs, nil
}

// The following are structures only used to decode the XML response from the
// MusicBrainz API. And only the stuff we are interested in and nothing more.
type mbReleaseMetadata struct {
	RelaseList mbReleaseList `xml:"release-list"`
}

type mbReleaseList struct {
	Relases []mbRelease `xml:"release"`
}

type mbRelease struct {
	ID    string `xml:"id,attr"`
	Score int    `xml:"score,attr"`
	Title string `xml:"title"`
}
