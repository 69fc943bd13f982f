package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"capcorpus/internal/services"
)

const (
	// MaxResultsPerPage is the API ceiling for maxResults.
	MaxResultsPerPage = 50
	// DefaultMaxSize caps listings the harvester is willing to walk.
	DefaultMaxSize = 5000
)

// ErrTooManyResults is returned when a listing reports more items than the
// configured maximum.
var ErrTooManyResults = errors.New("listing exceeds max size")

// Channel is a channel search hit.
type Channel struct {
	ID    string `json:"channel_id"`
	Title string `json:"channel_title"`
}

// URL returns the public channel page.
func (c Channel) URL() string {
	return "https://www.youtube.com/channel/" + c.ID
}

// Playlist is one playlist of a channel.
type Playlist struct {
	ID    string `json:"playlist_id"`
	Title string `json:"playlist_title"`
}

// Video is one playlist item.
type Video struct {
	ID         string `json:"video_id"`
	Title      string `json:"video_title"`
	PlaylistID string `json:"playlist_id"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items         []T
	NextPageToken string
	TotalResults  int64
}

// Options configures a Client.
type Options struct {
	APIKey         string
	Endpoint       string
	ResultsPerPage int64
	MaxSize        int64
}

// Client issues Data API requests.
type Client struct {
	svc            *ytapi.Service
	resultsPerPage int64
	maxSize        int64
}

// New builds a client authenticated with an API key.
func New(ctx context.Context, opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "youtube", "init", "api key is required", nil)
	}
	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(strings.TrimRight(endpoint, "/")+"/"))
	}
	svc, err := ytapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "youtube", "init", "create service", err)
	}
	perPage := opts.ResultsPerPage
	if perPage <= 0 || perPage > MaxResultsPerPage {
		perPage = MaxResultsPerPage
	}
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Client{svc: svc, resultsPerPage: perPage, maxSize: maxSize}, nil
}

// SearchChannels returns the first page of channel hits for name.
func (c *Client) SearchChannels(ctx context.Context, name string) ([]Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, services.Wrap(services.ErrValidation, "youtube", "search", "channel name is empty", nil)
	}
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(name).
		Type("channel").
		MaxResults(c.resultsPerPage).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError("search", err)
	}
	channels := make([]Channel, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Id == nil || item.Id.ChannelId == "" {
			continue
		}
		ch := Channel{ID: item.Id.ChannelId}
		if item.Snippet != nil {
			ch.Title = item.Snippet.ChannelTitle
			if ch.Title == "" {
				ch.Title = item.Snippet.Title
			}
		}
		channels = append(channels, ch)
	}
	if len(channels) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "youtube", "search", fmt.Sprintf("no channel matches %q", name), nil)
	}
	return channels, nil
}

// Playlists returns one page of the channel's playlists.
func (c *Client) Playlists(ctx context.Context, channelID, pageToken string) (Page[Playlist], error) {
	call := c.svc.Playlists.List([]string{"id", "snippet"}).
		ChannelId(channelID).
		MaxResults(c.resultsPerPage).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return Page[Playlist]{}, wrapAPIError("playlists", err)
	}
	page := Page[Playlist]{NextPageToken: resp.NextPageToken, TotalResults: totalResults(resp.PageInfo)}
	if err := c.checkSize("playlists", page.TotalResults); err != nil {
		return Page[Playlist]{}, err
	}
	for _, item := range resp.Items {
		if item == nil || item.Id == "" {
			continue
		}
		pl := Playlist{ID: item.Id}
		if item.Snippet != nil {
			pl.Title = item.Snippet.Title
		}
		page.Items = append(page.Items, pl)
	}
	return page, nil
}

// PlaylistVideos returns one page of a playlist's videos.
func (c *Client) PlaylistVideos(ctx context.Context, playlistID, pageToken string) (Page[Video], error) {
	call := c.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(c.resultsPerPage).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return Page[Video]{}, wrapAPIError("playlist items", err)
	}
	page := Page[Video]{NextPageToken: resp.NextPageToken, TotalResults: totalResults(resp.PageInfo)}
	if err := c.checkSize("playlist items", page.TotalResults); err != nil {
		return Page[Video]{}, err
	}
	for _, item := range resp.Items {
		if item == nil || item.Snippet == nil || item.Snippet.ResourceId == nil || item.Snippet.ResourceId.VideoId == "" {
			continue
		}
		page.Items = append(page.Items, Video{
			ID:         item.Snippet.ResourceId.VideoId,
			Title:      item.Snippet.Title,
			PlaylistID: playlistID,
		})
	}
	return page, nil
}

func (c *Client) checkSize(operation string, total int64) error {
	if total > c.maxSize {
		return services.Wrap(services.ErrValidation, "youtube", operation,
			fmt.Sprintf("%d results, max_size is %d", total, c.maxSize), ErrTooManyResults)
	}
	return nil
}

func totalResults(info *ytapi.PageInfo) int64 {
	if info == nil {
		return 0
	}
	return info.TotalResults
}

func wrapAPIError(operation string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusForbidden && hasReason(apiErr, "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded"):
			return services.Wrap(services.ErrQuotaExceeded, "youtube", operation, apiErr.Message, err)
		case apiErr.Code == http.StatusNotFound:
			return services.Wrap(services.ErrNotFound, "youtube", operation, apiErr.Message, err)
		case apiErr.Code == http.StatusBadRequest || apiErr.Code == http.StatusForbidden || apiErr.Code == http.StatusUnauthorized:
			return services.Wrap(services.ErrConfiguration, "youtube", operation, apiErr.Message, err)
		case apiErr.Code >= http.StatusInternalServerError || apiErr.Code == http.StatusTooManyRequests:
			return services.Wrap(services.ErrTransient, "youtube", operation, apiErr.Message, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, "youtube", operation, "", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return services.Wrap(services.ErrExternalTool, "youtube", operation, "", err)
}

func hasReason(apiErr *googleapi.Error, reasons ...string) bool {
	for _, item := range apiErr.Errors {
		for _, reason := range reasons {
			if item.Reason == reason {
				return true
			}
		}
	}
	return false
}
