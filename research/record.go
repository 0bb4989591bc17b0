package research

import "time"

// Orientation of a video, inferred from thumbnail dimensions.
type Orientation string

// Orientation values.
const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
	OrientationSquare     Orientation = "square"
	OrientationUnknown    Orientation = "unknown"
)

// Record is a fully-resolved research result: one video joined with its
// channel statistics and derived display fields. Records are immutable after
// creation and exist only when the channel lookup resolved.
type Record struct {
	// VideoID is the YouTube video ID.
	VideoID string `json:"video_id"`
	// Title is the video title.
	Title string `json:"title"`
	// Description is the video description.
	Description string `json:"description,omitempty"`
	// ChannelID and ChannelTitle identify the owning channel.
	ChannelID    string `json:"channel_id"`
	ChannelTitle string `json:"channel_title"`
	// Thumbnail is the best available thumbnail URL.
	Thumbnail string `json:"thumbnail"`
	// Published is the publish timestamp.
	Published time.Time `json:"published"`
	// ViewCount, LikeCount and CommentCount are the video statistics.
	ViewCount    uint64 `json:"view_count"`
	LikeCount    uint64 `json:"like_count"`
	CommentCount uint64 `json:"comment_count"`
	// Subscribers is the resolved channel subscriber count (0 when hidden).
	Subscribers uint64 `json:"subscribers"`

	// DurationSeconds is the decoded video length.
	DurationSeconds int `json:"duration_seconds"`
	// DurationDisplay is the formatted clock string ("M:SS" or "H:MM:SS").
	DurationDisplay string `json:"duration_display"`
	// WatchURL is the constructed watch page URL.
	WatchURL string `json:"watch_url"`
	// Ratio is views divided by subscribers (0 when subscribers is 0).
	Ratio float64 `json:"ratio"`
	// Engaged reports whether the video cleared the engagement threshold.
	Engaged bool `json:"engaged"`
	// Orientation is inferred from the thumbnail dimensions.
	Orientation Orientation `json:"orientation"`
	// Keyword is the search keyword active when the record was fetched.
	Keyword string `json:"keyword"`
}

// orientationOf infers the orientation from thumbnail dimensions.
func orientationOf(width, height int64) Orientation {
	switch {
	case width == 0 || height == 0:
		return OrientationUnknown
	case width > height:
		return OrientationHorizontal
	case height > width:
		return OrientationVertical
	default:
		return OrientationSquare
	}
}
