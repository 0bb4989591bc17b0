// Package export serializes accumulated research records and delivers them
// to the configured spreadsheet webhook.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ytresearch/internal/httpclient"
	"ytresearch/internal/logging"
	"ytresearch/research"
	"ytresearch/settings"
)

// ErrNoRecords indicates an export was requested with nothing accumulated.
var ErrNoRecords = errors.New("export: no records to export")

// Row is one spreadsheet row. The webhook collaborator writes these nine
// columns, in this order, under a fixed header.
type Row struct {
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Views       uint64 `json:"views"`
	Subs        uint64 `json:"subs"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
	Duration    string `json:"duration"`
	PublishedAt string `json:"publishedAt"`
	SearchQuery string `json:"searchQuery"`
}

// Payload is the webhook request body.
type Payload struct {
	// SpreadsheetID identifies the target spreadsheet.
	SpreadsheetID string `json:"spreadsheetId"`
	// SearchQuery is the session keyword; the webhook names the sheet
	// after a truncated form of it.
	SearchQuery string `json:"searchQuery"`
	// BatchID correlates this delivery in logs on both ends.
	BatchID string `json:"batchId"`
	// Videos are the rows to append.
	Videos []Row `json:"videos"`
}

// Receipt summarizes a completed export.
type Receipt struct {
	// BatchID is the UUID stamped on the delivered payload.
	BatchID string `json:"batch_id"`
	// Rows is the number of rows delivered.
	Rows int `json:"rows"`
	// ExportedAt is when delivery completed.
	ExportedAt time.Time `json:"exported_at"`
}

// Client delivers export payloads to the webhook.
type Client struct {
	http *httpclient.Client
}

// NewClient creates an export client over the given HTTP client.
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// Export serializes the records and posts them to the configured webhook in
// a single request. It validates its preconditions first: complete settings
// and a non-empty record collection, both surfaced as validation failures
// before any network traffic.
//
// Unlike the original no-cors transport, the response is read: a non-2xx
// status from the webhook is returned as an *httpclient.HTTPError instead
// of being reported as success.
func (c *Client) Export(ctx context.Context, records []research.Record, keyword string, creds settings.Settings) (*Receipt, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	payload := Payload{
		SpreadsheetID: creds.SpreadsheetID,
		SearchQuery:   keyword,
		BatchID:       uuid.NewString(),
		Videos:        make([]Row, 0, len(records)),
	}
	for _, r := range records {
		payload.Videos = append(payload.Videos, rowFromRecord(r))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	if _, err := c.http.Post(ctx, creds.WebhookURL, "application/json", bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("post webhook: %w", err)
	}

	logging.Logger.Info().
		Str("batch_id", payload.BatchID).
		Int("rows", len(payload.Videos)).
		Msg("export delivered")

	return &Receipt{
		BatchID:    payload.BatchID,
		Rows:       len(payload.Videos),
		ExportedAt: time.Now(),
	}, nil
}

// rowFromRecord flattens a record into its spreadsheet row shape.
// Each row carries the keyword the record was fetched under, not the keyword
// in the search box at export time.
func rowFromRecord(r research.Record) Row {
	return Row{
		Title:       r.Title,
		Channel:     r.ChannelTitle,
		Views:       r.ViewCount,
		Subs:        r.Subscribers,
		URL:         r.WatchURL,
		Thumbnail:   r.Thumbnail,
		Duration:    r.DurationDisplay,
		PublishedAt: r.Published.Format("2006-01-02"),
		SearchQuery: r.Keyword,
	}
}
