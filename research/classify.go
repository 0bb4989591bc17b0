package research

import (
	"fmt"

	"ytresearch/internal/logging"
	"ytresearch/youtube"
)

// DefaultEngagementMultiplier is the view/subscriber threshold used when no
// multiplier is configured.
const DefaultEngagementMultiplier = 1.5

// Classify joins video records with their channel statistics and applies the
// duration-class and engagement filters. Output order matches input order;
// the search endpoint already applied the requested sort.
//
// Videos whose channel is absent from the stats map are dropped with a
// diagnostic rather than treated as errors; the channels endpoint simply does
// not return some channels (terminated, region-blocked).
func Classify(videos []youtube.Video, channels map[string]youtube.ChannelStats, filters Filters, multiplier float64) []Record {
	if multiplier <= 0 {
		multiplier = DefaultEngagementMultiplier
	}

	records := make([]Record, 0, len(videos))
	for _, v := range videos {
		seconds := youtube.ParseDuration(v.Duration)

		switch filters.Duration {
		case DurationShort:
			if seconds >= ShortMaxSeconds {
				continue
			}
		case DurationLong:
			if seconds < ShortMaxSeconds {
				continue
			}
		}

		stats, ok := channels[v.ChannelID]
		if !ok {
			logging.Logger.Warn().
				Str("video_id", v.ID).
				Str("channel_id", v.ChannelID).
				Msg("channel lookup gap, dropping video")
			continue
		}

		ratio := 0.0
		if stats.Subscribers > 0 {
			ratio = float64(v.ViewCount) / float64(stats.Subscribers)
		}
		engaged := float64(v.ViewCount) >= float64(stats.Subscribers)*multiplier

		if filters.EngagementOnly && !engaged {
			continue
		}

		records = append(records, Record{
			VideoID:         v.ID,
			Title:           v.Title,
			Description:     v.Description,
			ChannelID:       v.ChannelID,
			ChannelTitle:    v.ChannelTitle,
			Thumbnail:       v.Thumbnail,
			Published:       v.Published,
			ViewCount:       v.ViewCount,
			LikeCount:       v.LikeCount,
			CommentCount:    v.CommentCount,
			Subscribers:     stats.Subscribers,
			DurationSeconds: seconds,
			DurationDisplay: youtube.FormatDuration(seconds),
			WatchURL:        fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID),
			Ratio:           ratio,
			Engaged:         engaged,
			Orientation:     orientationOf(v.ThumbnailWidth, v.ThumbnailHeight),
			Keyword:         filters.Keyword,
		})
	}

	return records
}
