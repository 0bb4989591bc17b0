package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ytresearch/internal/httpclient"
	"ytresearch/research"
	"ytresearch/settings"
)

func testRecords() []research.Record {
	return []research.Record{
		{
			Title:           "How to train",
			ChannelTitle:    "Run Club",
			ViewCount:       5000,
			Subscribers:     1000,
			WatchURL:        "https://www.youtube.com/watch?v=abc",
			Thumbnail:       "https://i.ytimg.com/vi/abc/hq720.jpg",
			DurationDisplay: "5:30",
			Published:       time.Date(2024, 3, 7, 15, 30, 0, 0, time.UTC),
			Keyword:         "marathon",
		},
		{
			Title:           "Race day",
			ChannelTitle:    "Run Club",
			ViewCount:       9000,
			Subscribers:     1000,
			WatchURL:        "https://www.youtube.com/watch?v=def",
			Thumbnail:       "https://i.ytimg.com/vi/def/hq720.jpg",
			DurationDisplay: "12:01",
			Published:       time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
			Keyword:         "marathon",
		},
	}
}

func testCreds(webhookURL string) settings.Settings {
	return settings.Settings{
		APIKey:        "key",
		SpreadsheetID: "sheet-1",
		WebhookURL:    webhookURL,
	}
}

func TestExportDeliversPayload(t *testing.T) {
	var got Payload
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("payload is not valid JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(httpclient.New(nil))
	receipt, err := client.Export(context.Background(), testRecords(), "marathon", testCreds(srv.URL))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if contentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", contentType)
	}
	if got.SpreadsheetID != "sheet-1" {
		t.Errorf("SpreadsheetID = %q, want %q", got.SpreadsheetID, "sheet-1")
	}
	if got.SearchQuery != "marathon" {
		t.Errorf("SearchQuery = %q, want %q", got.SearchQuery, "marathon")
	}
	if got.BatchID == "" {
		t.Error("BatchID is empty")
	}
	if len(got.Videos) != 2 {
		t.Fatalf("Videos has %d rows, want 2", len(got.Videos))
	}

	row := got.Videos[0]
	if row.Title != "How to train" || row.Channel != "Run Club" {
		t.Errorf("row = %+v", row)
	}
	if row.Views != 5000 || row.Subs != 1000 {
		t.Errorf("row counts = views %d subs %d", row.Views, row.Subs)
	}
	if row.PublishedAt != "2024-03-07" {
		t.Errorf("PublishedAt = %q, want %q", row.PublishedAt, "2024-03-07")
	}
	if row.SearchQuery != "marathon" {
		t.Errorf("row SearchQuery = %q, want the fetch-time keyword", row.SearchQuery)
	}

	if receipt.BatchID != got.BatchID {
		t.Errorf("receipt BatchID = %q, payload BatchID = %q", receipt.BatchID, got.BatchID)
	}
	if receipt.Rows != 2 {
		t.Errorf("receipt Rows = %d, want 2", receipt.Rows)
	}
}

func TestExportRejectsIncompleteSettings(t *testing.T) {
	client := NewClient(httpclient.New(nil))

	_, err := client.Export(context.Background(), testRecords(), "x", settings.Settings{APIKey: "k"})

	var verr *settings.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Export() = %v, want *settings.ValidationError", err)
	}
	if verr.Field != "spreadsheet_id" {
		t.Errorf("field = %q, want %q", verr.Field, "spreadsheet_id")
	}
}

func TestExportRejectsEmptyCollection(t *testing.T) {
	client := NewClient(httpclient.New(nil))

	_, err := client.Export(context.Background(), nil, "x", testCreds("https://example.com/hook"))
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("Export() = %v, want ErrNoRecords", err)
	}
}

func TestExportSurfacesWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sheet not found", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(httpclient.New(nil))
	_, err := client.Export(context.Background(), testRecords(), "x", testCreds(srv.URL))

	var herr *httpclient.HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("Export() = %v, want *httpclient.HTTPError", err)
	}
	if herr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want %d", herr.StatusCode, http.StatusBadGateway)
	}
}

func TestExportBatchIDsAreUnique(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p Payload
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &p)
		ids = append(ids, p.BatchID)
	}))
	defer srv.Close()

	client := NewClient(httpclient.New(nil))
	for range 3 {
		if _, err := client.Export(context.Background(), testRecords(), "x", testCreds(srv.URL)); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
	}

	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate batch ID %q", id)
		}
		seen[id] = true
	}
}
