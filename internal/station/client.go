// ABOUTME: NTS Radio directory API client
// ABOUTME: Fetches live channel and mixtape listings with typed results
package station

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/foureyes/marconio-go/internal/version"
	"github.com/rs/zerolog/log"
)

const (
	apiBase = "https://www.nts.live/api/v2"

	// PathLive and PathMixtapes are the only directory documents served;
	// the rest of the API surface is not stable enough to expose.
	PathLive     = "live"
	PathMixtapes = "mixtapes"

	// The two live channels stream from fixed relay endpoints that the
	// directory API does not carry.
	Channel1StreamURL = "https://stream-relay-geo.ntslive.net/stream"
	Channel2StreamURL = "https://stream-relay-geo.ntslive.net/stream2"
)

// LiveResponse is the live document: one entry per broadcast channel.
type LiveResponse struct {
	Results []LiveChannel `json:"results"`
}

// LiveChannel carries the current and upcoming broadcast for one channel.
type LiveChannel struct {
	ChannelName string    `json:"channel_name"`
	Now         Broadcast `json:"now"`
	Next        Broadcast `json:"next"`
}

// Broadcast describes one scheduled show on a live channel.
type Broadcast struct {
	BroadcastTitle string          `json:"broadcast_title"`
	StartTimestamp string          `json:"start_timestamp"`
	EndTimestamp   string          `json:"end_timestamp"`
	Embeds         BroadcastEmbeds `json:"embeds"`
}

// BroadcastEmbeds holds the expanded show record nested in a broadcast.
type BroadcastEmbeds struct {
	Details BroadcastDetails `json:"details"`
}

// BroadcastDetails is the show record behind a broadcast.
type BroadcastDetails struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	LocationLong string `json:"location_long"`
	Media        Media  `json:"media"`
}

// Media holds artwork URLs at the sizes the directory publishes.
type Media struct {
	BackgroundLarge string `json:"background_large"`
	PictureLarge    string `json:"picture_large"`
}

// MixtapesResponse is the mixtapes document.
type MixtapesResponse struct {
	Results []Mixtape `json:"results"`
}

// Mixtape is one endless curated stream.
type Mixtape struct {
	MixtapeAlias        string `json:"mixtape_alias"`
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle"`
	Description         string `json:"description"`
	AudioStreamEndpoint string `json:"audio_stream_endpoint"`
	Media               Media  `json:"media"`
}

// StatusError reports a non-2xx directory response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("directory returned status %d: %s", e.StatusCode, e.Status)
}

// Client fetches the public NTS directory API.
type Client struct {
	// HTTPClient is the transport used for requests.
	HTTPClient *http.Client

	// BaseURL points at the directory API root.
	BaseURL string
}

// NewClient creates a directory client with a tuned transport. The client
// carries no overall timeout; callers bound requests with their context.
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				DisableCompression:    true,
			},
		},
		BaseURL: apiBase,
	}
}

// Get fetches one directory document as raw JSON. Only the live and
// mixtapes paths are served; any other path is an error.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	if path != PathLive && path != PathMixtapes {
		return nil, fmt.Errorf("unsupported api path: %s", path)
	}

	url := c.BaseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json")

	log.Debug().Msgf("Fetching directory document: %s", url)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory response: %w", err)
	}

	return json.RawMessage(raw), nil
}

// Live fetches the live document and decodes the channel listings.
func (c *Client) Live(ctx context.Context) (*LiveResponse, error) {
	raw, err := c.Get(ctx, PathLive)
	if err != nil {
		return nil, err
	}

	var live LiveResponse
	if err := json.Unmarshal(raw, &live); err != nil {
		return nil, fmt.Errorf("failed to parse live document: %w", err)
	}

	return &live, nil
}

// Mixtapes fetches the mixtapes document and decodes the listings.
func (c *Client) Mixtapes(ctx context.Context) (*MixtapesResponse, error) {
	raw, err := c.Get(ctx, PathMixtapes)
	if err != nil {
		return nil, err
	}

	var mixtapes MixtapesResponse
	if err := json.Unmarshal(raw, &mixtapes); err != nil {
		return nil, fmt.Errorf("failed to parse mixtapes document: %w", err)
	}

	return &mixtapes, nil
}

// ChannelStreamURL maps a live channel name to its relay endpoint.
// Unknown channels return an empty string.
func ChannelStreamURL(name string) string {
	switch name {
	case "1":
		return Channel1StreamURL
	case "2":
		return Channel2StreamURL
	default:
		return ""
	}
}

// Airtime formats the broadcast window in local time, like "13:00-15:00".
// Returns an empty string when either timestamp is missing or malformed.
func (b Broadcast) Airtime() string {
	start, err := time.Parse(time.RFC3339, b.StartTimestamp)
	if err != nil {
		return ""
	}
	end, err := time.Parse(time.RFC3339, b.EndTimestamp)
	if err != nil {
		return ""
	}
	return start.Local().Format("15:04") + "-" + end.Local().Format("15:04")
}

// ArtworkURL picks the best artwork for a broadcast, preferring the large
// background and falling back to the show picture.
func (b Broadcast) ArtworkURL() string {
	if b.Embeds.Details.Media.BackgroundLarge != "" {
		return b.Embeds.Details.Media.BackgroundLarge
	}
	return b.Embeds.Details.Media.PictureLarge
}
