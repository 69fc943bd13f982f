package timedtext

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"capcorpus/internal/language"
	"capcorpus/internal/services"
	"capcorpus/internal/transcript"
)

// DefaultBaseURL is the public timedtext endpoint.
const DefaultBaseURL = "https://www.youtube.com/api/timedtext"

const maxPayloadBytes = 32 << 20

// HTTPDoer describes the HTTP client used by the timedtext client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Track describes one caption track of a video.
type Track struct {
	LangCode string `xml:"lang_code,attr"`
	Name     string `xml:"name,attr"`
	Kind     string `xml:"kind,attr"`
	Default  bool   `xml:"lang_default,attr"`
}

// Generated reports whether the track was produced by speech recognition.
func (t Track) Generated() bool {
	return strings.EqualFold(t.Kind, "asr")
}

type trackList struct {
	Tracks []Track `xml:"track"`
}

// Client fetches caption tracks.
type Client struct {
	baseURL string
	client  HTTPDoer
}

// New returns a client for baseURL. Empty values select the public endpoint
// and http.DefaultClient.
func New(baseURL string, client HTTPDoer) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: baseURL, client: client}
}

// ListTracks returns every caption track of videoID.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	body, err := c.get(ctx, "list tracks", url.Values{"type": {"list"}, "v": {videoID}})
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	var list trackList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "timedtext", "list tracks", "decode track list", err)
	}
	return list.Tracks, nil
}

// Fetch downloads one track and decodes its lines.
func (c *Client) Fetch(ctx context.Context, videoID string, track Track) ([]transcript.Line, error) {
	params := url.Values{"v": {videoID}, "lang": {track.LangCode}, "fmt": {"json3"}}
	if track.Name != "" {
		params.Set("name", track.Name)
	}
	if track.Generated() {
		params.Set("kind", "asr")
	}
	body, err := c.get(ctx, "fetch track", params)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "timedtext", "fetch track", "empty payload for "+videoID, nil)
	}
	lines, err := transcript.ParseJSON3(body)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "timedtext", "fetch track", videoID, err)
	}
	return lines, nil
}

// Pair holds the auto-generated and manual transcripts of one video.
type Pair struct {
	Autogen []transcript.Line
	Manual  []transcript.Line
}

// FetchPair downloads the auto-generated and the manually created track in
// lang. Videos lacking either are reported with services.ErrNotFound.
func (c *Client) FetchPair(ctx context.Context, videoID, lang string) (Pair, error) {
	tracks, err := c.ListTracks(ctx, videoID)
	if err != nil {
		return Pair{}, err
	}
	autoTrack, ok := SelectTrack(tracks, lang, true)
	if !ok {
		return Pair{}, services.Wrap(services.ErrNotFound, "timedtext", "select track", "no generated "+lang+" track for "+videoID, nil)
	}
	manualTrack, ok := SelectTrack(tracks, lang, false)
	if !ok {
		return Pair{}, services.Wrap(services.ErrNotFound, "timedtext", "select track", "no manual "+lang+" track for "+videoID, nil)
	}
	var pair Pair
	if pair.Autogen, err = c.Fetch(ctx, videoID, autoTrack); err != nil {
		return Pair{}, err
	}
	if pair.Manual, err = c.Fetch(ctx, videoID, manualTrack); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// SelectTrack picks the track in lang of the requested kind. Regional
// variants ("en-GB") match their base language; an exact code match and the
// default track win ties.
func SelectTrack(tracks []Track, lang string, generated bool) (Track, bool) {
	want := language.ToISO2(lang)
	best, bestScore := Track{}, -1
	for _, t := range tracks {
		if t.Generated() != generated {
			continue
		}
		if language.ToISO2(t.LangCode) != want {
			continue
		}
		score := 0
		if strings.EqualFold(t.LangCode, lang) {
			score += 2
		}
		if t.Default {
			score++
		}
		if score > bestScore {
			best, bestScore = t, score
		}
	}
	return best, bestScore >= 0
}

func (c *Client) get(ctx context.Context, operation string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "timedtext", operation, "build request", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, services.Wrap(services.ErrTimeout, "timedtext", operation, "", err)
		}
		return nil, services.Wrap(services.ErrTransient, "timedtext", operation, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "timedtext", operation, "read body", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "timedtext", operation, fmt.Sprintf("status %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, services.Wrap(services.ErrTransient, "timedtext", operation, fmt.Sprintf("status %d", resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return nil, services.Wrap(services.ErrExternalTool, "timedtext", operation, fmt.Sprintf("status %d", resp.StatusCode), nil)
	}
	return body, nil
}
