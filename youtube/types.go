package youtube

import "time"

// Video is the raw per-video record assembled from the videos endpoint.
type Video struct {
	// ID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	ID string `json:"id"`
	// Title is the video title.
	Title string `json:"title"`
	// Description is the video description.
	Description string `json:"description,omitempty"`
	// ChannelID is the owning channel's ID.
	ChannelID string `json:"channel_id"`
	// ChannelTitle is the owning channel's display name.
	ChannelTitle string `json:"channel_title"`
	// Thumbnail is the URL of the best available thumbnail.
	Thumbnail string `json:"thumbnail"`
	// ThumbnailWidth and ThumbnailHeight are the thumbnail dimensions.
	ThumbnailWidth  int64 `json:"thumbnail_width,omitempty"`
	ThumbnailHeight int64 `json:"thumbnail_height,omitempty"`
	// Published is when the video was published.
	Published time.Time `json:"published"`
	// Duration is the raw ISO 8601 duration notation (e.g. "PT12M5S").
	Duration string `json:"duration"`
	// ViewCount, LikeCount and CommentCount come from the statistics part.
	ViewCount    uint64 `json:"view_count"`
	LikeCount    uint64 `json:"like_count"`
	CommentCount uint64 `json:"comment_count"`
}

// ChannelStats is the per-channel record from the channels endpoint.
type ChannelStats struct {
	// ChannelID is the YouTube channel ID.
	ChannelID string `json:"channel_id"`
	// Subscribers is the subscriber count. Zero when hidden.
	Subscribers uint64 `json:"subscribers"`
	// Hidden reports whether the channel owner has suppressed the count.
	Hidden bool `json:"hidden"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	// VideoIDs are the returned video IDs in ranking order.
	VideoIDs []string `json:"video_ids"`
	// NextPageToken is the continuation token for the following page.
	// Empty means there are no more pages.
	NextPageToken string `json:"next_page_token"`
}

// SearchOptions control a single search call.
type SearchOptions struct {
	// MaxResults is the page size (1-50).
	MaxResults int64
	// Order is the result ordering ("relevance", "viewCount", "rating").
	Order string
	// PublishedAfter, when non-zero, restricts results to newer videos.
	PublishedAfter time.Time
	// PageToken resumes a previous search at the next page.
	PageToken string
	// RegionCode restricts results to a region (e.g. "JP").
	RegionCode string
	// RelevanceLanguage biases relevance ranking to a language (e.g. "ja").
	RelevanceLanguage string
}
