// Package youtube wraps the YouTube Data API v3 calls the research tool
// depends on: keyword search, batched video details, and batched channel
// statistics. It also provides the ISO 8601 duration codec.
package youtube

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"ytresearch/internal/logging"
)

// Quota units charged per endpoint, per the Data API quota tables.
const (
	searchQuotaUnits   = 100
	videosQuotaUnits   = 1
	channelsQuotaUnits = 1

	dailyQuotaUnits = 10000
)

// Client calls the YouTube Data API v3 with API-key auth.
// Outbound calls are paced client-side; quota usage is estimated and logged
// so a long research session can see how much of the daily budget remains.
type Client struct {
	service      *youtube.Service
	pacer        *rate.Limiter
	quotaReserve int

	mu             sync.Mutex
	estimatedQuota int
	lastQuotaReset time.Time
	quotaExhausted bool
}

// NewClient creates a Data API client using the given API key.
// requestsPerSecond paces outbound calls (0 disables pacing). quotaReserve
// is the minimum estimated quota units to keep in reserve before calls are
// refused with ErrQuotaExceeded.
func NewClient(ctx context.Context, apiKey string, requestsPerSecond float64, quotaReserve int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	var pacer *rate.Limiter
	if requestsPerSecond > 0 {
		pacer = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &Client{
		service:        service,
		pacer:          pacer,
		quotaReserve:   quotaReserve,
		estimatedQuota: dailyQuotaUnits,
		lastQuotaReset: time.Now(),
	}, nil
}

// SearchVideos performs one keyword search call and returns the page of
// video IDs in ranking order plus the continuation token for the next page.
func (c *Client) SearchVideos(ctx context.Context, query string, opts SearchOptions) (SearchPage, error) {
	if err := c.before(ctx, "search"); err != nil {
		return SearchPage{}, err
	}

	call := c.service.Search.List([]string{"id"}).
		Q(query).
		Type("video").
		MaxResults(opts.MaxResults).
		Context(ctx)

	if opts.Order != "" {
		call = call.Order(opts.Order)
	}
	if !opts.PublishedAfter.IsZero() {
		call = call.PublishedAfter(opts.PublishedAfter.UTC().Format(time.RFC3339))
	}
	if opts.PageToken != "" {
		call = call.PageToken(opts.PageToken)
	}
	if opts.RegionCode != "" {
		call = call.RegionCode(opts.RegionCode)
	}
	if opts.RelevanceLanguage != "" {
		call = call.RelevanceLanguage(opts.RelevanceLanguage)
	}

	resp, err := call.Do()
	if err != nil {
		return SearchPage{}, wrapAPIError("search", err)
	}

	c.trackQuotaUsage(searchQuotaUnits)

	page := SearchPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			page.VideoIDs = append(page.VideoIDs, item.Id.VideoId)
		}
	}
	return page, nil
}

// VideoDetails fetches snippet, statistics and content details for up to 50
// video IDs in a single batched call. Result order follows the input order
// as returned by the API.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > 50 {
		ids = ids[:50]
	}

	if err := c.before(ctx, "videos"); err != nil {
		return nil, err
	}

	resp, err := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError("videos", err)
	}

	c.trackQuotaUsage(videosQuotaUnits)

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, convertVideo(item))
	}
	return videos, nil
}

// ChannelStats fetches subscriber statistics for up to 50 distinct channel
// IDs in a single batched call. Channels whose owners hide the subscriber
// count come back with Hidden=true and zero subscribers.
func (c *Client) ChannelStats(ctx context.Context, ids []string) (map[string]ChannelStats, error) {
	if len(ids) == 0 {
		return map[string]ChannelStats{}, nil
	}
	if len(ids) > 50 {
		ids = ids[:50]
	}

	if err := c.before(ctx, "channels"); err != nil {
		return nil, err
	}

	resp, err := c.service.Channels.List([]string{"statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError("channels", err)
	}

	c.trackQuotaUsage(channelsQuotaUnits)

	stats := make(map[string]ChannelStats, len(resp.Items))
	for _, item := range resp.Items {
		cs := ChannelStats{ChannelID: item.Id}
		if item.Statistics != nil {
			cs.Subscribers = item.Statistics.SubscriberCount
			cs.Hidden = item.Statistics.HiddenSubscriberCount
		}
		stats[item.Id] = cs
	}
	return stats, nil
}

// before applies pacing and refuses the call once the estimated quota has
// dropped below the configured reserve.
func (c *Client) before(ctx context.Context, op string) error {
	c.mu.Lock()
	c.maybeResetQuota()
	if c.quotaExhausted {
		c.mu.Unlock()
		return &APIError{Op: op, Err: ErrQuotaExceeded}
	}
	c.mu.Unlock()

	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return &APIError{Op: op, Err: err}
		}
	}
	return nil
}

// trackQuotaUsage updates the estimated quota and checks exhaustion.
func (c *Client) trackQuotaUsage(units int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maybeResetQuota()
	c.estimatedQuota -= units

	if c.estimatedQuota < c.quotaReserve {
		if !c.quotaExhausted {
			logging.Logger.Warn().
				Int("remaining", c.estimatedQuota).
				Int("reserve", c.quotaReserve).
				Msg("youtube quota exhausted")
			c.quotaExhausted = true
		}
		return
	}

	logging.Logger.Debug().
		Int("remaining", c.estimatedQuota).
		Msg("youtube quota usage")
}

// maybeResetQuota resets the estimate once a day has passed. Caller holds mu.
func (c *Client) maybeResetQuota() {
	if time.Since(c.lastQuotaReset) > 24*time.Hour {
		c.estimatedQuota = dailyQuotaUnits
		c.lastQuotaReset = time.Now()
		c.quotaExhausted = false
		logging.Logger.Info().Msg("youtube quota reset (new day)")
	}
}

// EstimatedQuota returns the estimated remaining quota units.
func (c *Client) EstimatedQuota() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.estimatedQuota
}

// convertVideo shapes an API video item into a Video record.
func convertVideo(item *youtube.Video) Video {
	v := Video{ID: item.Id}

	if item.Snippet != nil {
		v.Title = item.Snippet.Title
		v.Description = item.Snippet.Description
		v.ChannelID = item.Snippet.ChannelId
		v.ChannelTitle = item.Snippet.ChannelTitle
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			v.Published = t
		}
		v.Thumbnail, v.ThumbnailWidth, v.ThumbnailHeight = bestThumbnail(item.Snippet.Thumbnails)
	}

	if item.Statistics != nil {
		v.ViewCount = item.Statistics.ViewCount
		v.LikeCount = item.Statistics.LikeCount
		v.CommentCount = item.Statistics.CommentCount
	}

	if item.ContentDetails != nil {
		v.Duration = item.ContentDetails.Duration
	}

	return v
}

// bestThumbnail picks the highest-quality thumbnail available.
func bestThumbnail(t *youtube.ThumbnailDetails) (string, int64, int64) {
	if t == nil {
		return "", 0, 0
	}
	for _, thumb := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url, thumb.Width, thumb.Height
		}
	}
	return "", 0, 0
}
