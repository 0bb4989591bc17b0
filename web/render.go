package web

import (
	"fmt"
	"strconv"

	"ytresearch/research"
)

// FormatCount abbreviates a count for display: thousands as "K" to one
// decimal, millions as "M" to one decimal, smaller values as the literal
// integer.
func FormatCount(n uint64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatUint(n, 10)
	}
}

// cardView is the per-record view model handed to the card template.
type cardView struct {
	Title       string
	WatchURL    string
	Thumbnail   string
	Channel     string
	Views       string
	Subs        string
	Ratio       string
	Engaged     bool
	Duration    string
	Published   string
	Orientation string
}

// newCardView shapes a record for rendering.
func newCardView(r research.Record) cardView {
	ratio := "—"
	if r.Subscribers > 0 {
		ratio = fmt.Sprintf("%.1fx", r.Ratio)
	}
	return cardView{
		Title:       r.Title,
		WatchURL:    r.WatchURL,
		Thumbnail:   r.Thumbnail,
		Channel:     r.ChannelTitle,
		Views:       FormatCount(r.ViewCount),
		Subs:        FormatCount(r.Subscribers),
		Ratio:       ratio,
		Engaged:     r.Engaged,
		Duration:    r.DurationDisplay,
		Published:   r.Published.Format("Jan 2, 2006"),
		Orientation: string(r.Orientation),
	}
}

// newCardViews shapes a batch of records.
func newCardViews(records []research.Record) []cardView {
	views := make([]cardView, 0, len(records))
	for _, r := range records {
		views = append(views, newCardView(r))
	}
	return views
}
