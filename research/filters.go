// Package research implements the search orchestration, filtering and
// classification that turn raw YouTube API records into research results.
package research

import (
	"fmt"
	"time"
)

// Recency restricts results to an upload window.
type Recency string

// Supported upload-recency windows.
const (
	RecencyAny      Recency = "any"
	RecencyWeek     Recency = "week"
	RecencyMonth    Recency = "month"
	RecencyQuarter  Recency = "quarter"
	RecencyHalfYear Recency = "halfYear"
	RecencyYear     Recency = "year"
)

// Since returns the lower-bound publish timestamp for the window, computed
// backwards from now. The zero time means no bound (RecencyAny).
func (r Recency) Since(now time.Time) time.Time {
	switch r {
	case RecencyWeek:
		return now.AddDate(0, 0, -7)
	case RecencyMonth:
		return now.AddDate(0, -1, 0)
	case RecencyQuarter:
		return now.AddDate(0, -3, 0)
	case RecencyHalfYear:
		return now.AddDate(0, -6, 0)
	case RecencyYear:
		return now.AddDate(-1, 0, 0)
	}
	return time.Time{}
}

// Order is the server-side result ordering.
type Order string

// Supported sort orders, matching the search endpoint's order parameter.
const (
	OrderRelevance Order = "relevance"
	OrderViewCount Order = "viewCount"
	OrderRating    Order = "rating"
)

// DurationClass buckets videos by length.
type DurationClass string

// Supported duration classes.
const (
	DurationAny   DurationClass = "any"
	DurationShort DurationClass = "short"
	DurationLong  DurationClass = "long"
)

// ShortMaxSeconds is the exclusive upper bound of the "short" class:
// a video is short when it runs strictly under this many seconds.
const ShortMaxSeconds = 60

// Filters are the user-selected search parameters, rebuilt per search.
type Filters struct {
	// Keyword is the search query. Required.
	Keyword string `json:"keyword"`
	// Recency restricts results to an upload window.
	Recency Recency `json:"recency"`
	// Order is the server-side sort order.
	Order Order `json:"order"`
	// Duration buckets results by video length.
	Duration DurationClass `json:"duration"`
	// EngagementOnly keeps only videos whose views clear the
	// subscriber-multiple threshold.
	EngagementOnly bool `json:"engagement_only"`
}

// Validate checks the filters, applying defaults for blank enums.
func (f *Filters) Validate() error {
	if f.Keyword == "" {
		return &ValidationError{Field: "keyword"}
	}
	if f.Recency == "" {
		f.Recency = RecencyAny
	}
	if f.Order == "" {
		f.Order = OrderRelevance
	}
	if f.Duration == "" {
		f.Duration = DurationAny
	}
	switch f.Recency {
	case RecencyAny, RecencyWeek, RecencyMonth, RecencyQuarter, RecencyHalfYear, RecencyYear:
	default:
		return &ValidationError{Field: "recency"}
	}
	switch f.Order {
	case OrderRelevance, OrderViewCount, OrderRating:
	default:
		return &ValidationError{Field: "order"}
	}
	switch f.Duration {
	case DurationAny, DurationShort, DurationLong:
	default:
		return &ValidationError{Field: "duration"}
	}
	return nil
}

// ValidationError indicates a missing or invalid search input.
type ValidationError struct {
	// Field is the offending input name.
	Field string
}

// Error returns a string representation of the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("research: invalid or missing %s", e.Field)
}
