package research

import (
	"context"
	"fmt"
	"time"

	"ytresearch/internal/logging"
	"ytresearch/youtube"
)

// VideoAPI is the slice of the YouTube client the orchestrator depends on.
type VideoAPI interface {
	// SearchVideos performs one search call and returns a page of video IDs.
	SearchVideos(ctx context.Context, query string, opts youtube.SearchOptions) (youtube.SearchPage, error)
	// VideoDetails fetches details for up to 50 video IDs in one call.
	VideoDetails(ctx context.Context, ids []string) ([]youtube.Video, error)
	// ChannelStats fetches statistics for up to 50 channel IDs in one call.
	ChannelStats(ctx context.Context, ids []string) (map[string]youtube.ChannelStats, error)
}

// Options configure a Searcher.
type Options struct {
	// PageSize is the search page size (1-50, default 50).
	PageSize int64
	// EngagementMultiplier is the view/subscriber threshold (default 1.5).
	EngagementMultiplier float64
	// RegionCode and RelevanceLanguage are passed through to the search call.
	RegionCode        string
	RelevanceLanguage string
	// Now supplies the current time; nil means time.Now. Test seam for the
	// recency bound.
	Now func() time.Time
}

// Searcher chains the three Data API calls — search, video details, channel
// statistics — and commits classified results to its session. One Searcher
// owns one Session.
type Searcher struct {
	api     VideoAPI
	session *Session
	opts    Options
}

// NewSearcher creates a Searcher over the given API and session.
func NewSearcher(api VideoAPI, session *Session, opts Options) *Searcher {
	if opts.PageSize <= 0 || opts.PageSize > 50 {
		opts.PageSize = 50
	}
	if opts.EngagementMultiplier <= 0 {
		opts.EngagementMultiplier = DefaultEngagementMultiplier
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Searcher{api: api, session: session, opts: opts}
}

// Session returns the searcher's session.
func (s *Searcher) Session() *Session {
	return s.session
}

// Search runs the chained search → details → channel-stats sequence and
// returns the batch of classified records. When continuation is true the
// stored page token resumes the previous search; otherwise the session is
// cleared first.
//
// Any call failing aborts the whole sequence with a single wrapped error and
// leaves the session unchanged. An empty search page is not an error: it
// returns an empty batch.
func (s *Searcher) Search(ctx context.Context, filters Filters, continuation bool) ([]Record, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	if err := s.session.begin(); err != nil {
		return nil, err
	}
	defer s.session.end()

	if !continuation {
		s.session.reset(filters.Keyword)
	}

	opts := youtube.SearchOptions{
		MaxResults:        s.opts.PageSize,
		Order:             string(filters.Order),
		RegionCode:        s.opts.RegionCode,
		RelevanceLanguage: s.opts.RelevanceLanguage,
	}
	if filters.Recency != RecencyAny {
		opts.PublishedAfter = filters.Recency.Since(s.opts.Now())
	}
	if continuation {
		opts.PageToken = s.session.PageToken()
	}

	start := time.Now()

	page, err := s.api.SearchVideos(ctx, filters.Keyword, opts)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	if len(page.VideoIDs) == 0 {
		s.session.commit(nil, page.NextPageToken)
		return []Record{}, nil
	}

	videos, err := s.api.VideoDetails(ctx, page.VideoIDs)
	if err != nil {
		return nil, fmt.Errorf("video details: %w", err)
	}

	channelIDs := distinctChannelIDs(videos)

	channels, err := s.api.ChannelStats(ctx, channelIDs)
	if err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}

	records := Classify(videos, channels, filters, s.opts.EngagementMultiplier)
	s.session.commit(records, page.NextPageToken)

	logging.Logger.Info().
		Str("keyword", filters.Keyword).
		Int("found", len(page.VideoIDs)).
		Int("kept", len(records)).
		Bool("continuation", continuation).
		Dur("duration_ms", time.Since(start)).
		Msg("search completed")

	return records, nil
}

// distinctChannelIDs collects the distinct channel IDs in first-seen order.
func distinctChannelIDs(videos []youtube.Video) []string {
	seen := make(map[string]struct{}, len(videos))
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.ChannelID]; ok {
			continue
		}
		seen[v.ChannelID] = struct{}{}
		ids = append(ids, v.ChannelID)
	}
	return ids
}
