package research

import (
	"context"
	"errors"
	"testing"
	"time"

	"ytresearch/youtube"
)

// fakeAPI records the calls the orchestrator makes and replays canned
// responses.
type fakeAPI struct {
	searchCalls  []youtube.SearchOptions
	searchQuery  string
	detailIDs    []string
	channelIDs   []string
	page         youtube.SearchPage
	videos       []youtube.Video
	channels     map[string]youtube.ChannelStats
	searchErr    error
	detailsErr   error
	channelsErr  error
	searchActive chan struct{}
}

func (f *fakeAPI) SearchVideos(ctx context.Context, query string, opts youtube.SearchOptions) (youtube.SearchPage, error) {
	f.searchQuery = query
	f.searchCalls = append(f.searchCalls, opts)
	if f.searchActive != nil {
		f.searchActive <- struct{}{}
		<-f.searchActive
	}
	if f.searchErr != nil {
		return youtube.SearchPage{}, f.searchErr
	}
	return f.page, nil
}

func (f *fakeAPI) VideoDetails(ctx context.Context, ids []string) ([]youtube.Video, error) {
	f.detailIDs = ids
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	return f.videos, nil
}

func (f *fakeAPI) ChannelStats(ctx context.Context, ids []string) (map[string]youtube.ChannelStats, error) {
	f.channelIDs = ids
	if f.channelsErr != nil {
		return nil, f.channelsErr
	}
	return f.channels, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		page: youtube.SearchPage{
			VideoIDs:      []string{"v1", "v2"},
			NextPageToken: "token-1",
		},
		videos: []youtube.Video{
			testVideo("v1", "c1", "PT5M", 5000),
			testVideo("v2", "c2", "PT3M", 8000),
		},
		channels: map[string]youtube.ChannelStats{
			"c1": {ChannelID: "c1", Subscribers: 100},
			"c2": {ChannelID: "c2", Subscribers: 200},
		},
	}
}

func TestSearcherChainsAllThreeCalls(t *testing.T) {
	api := newFakeAPI()
	searcher := NewSearcher(api, NewSession(), Options{})

	records, err := searcher.Search(context.Background(), Filters{Keyword: "golang"}, false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if api.searchQuery != "golang" {
		t.Errorf("search query = %q, want %q", api.searchQuery, "golang")
	}
	if len(api.detailIDs) != 2 || api.detailIDs[0] != "v1" || api.detailIDs[1] != "v2" {
		t.Errorf("detail IDs = %v, want [v1 v2]", api.detailIDs)
	}
	if len(api.channelIDs) != 2 || api.channelIDs[0] != "c1" || api.channelIDs[1] != "c2" {
		t.Errorf("channel IDs = %v, want [c1 c2]", api.channelIDs)
	}
	if len(records) != 2 {
		t.Fatalf("Search() returned %d records, want 2", len(records))
	}
}

func TestSearcherDeduplicatesChannelIDs(t *testing.T) {
	api := newFakeAPI()
	api.page.VideoIDs = []string{"v1", "v2", "v3"}
	api.videos = []youtube.Video{
		testVideo("v1", "c1", "PT5M", 100),
		testVideo("v2", "c1", "PT3M", 100),
		testVideo("v3", "c2", "PT2M", 100),
	}
	searcher := NewSearcher(api, NewSession(), Options{})

	if _, err := searcher.Search(context.Background(), Filters{Keyword: "x"}, false); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(api.channelIDs) != 2 || api.channelIDs[0] != "c1" || api.channelIDs[1] != "c2" {
		t.Errorf("channel IDs = %v, want [c1 c2] in first-seen order", api.channelIDs)
	}
}

func TestSearcherStoresAndResumesPageToken(t *testing.T) {
	api := newFakeAPI()
	session := NewSession()
	searcher := NewSearcher(api, session, Options{})

	if _, err := searcher.Search(context.Background(), Filters{Keyword: "x"}, false); err != nil {
		t.Fatalf("fresh Search() error = %v", err)
	}
	if got := session.PageToken(); got != "token-1" {
		t.Fatalf("PageToken() = %q, want %q", got, "token-1")
	}
	if api.searchCalls[0].PageToken != "" {
		t.Errorf("fresh search sent page token %q", api.searchCalls[0].PageToken)
	}

	api.page.NextPageToken = ""
	if _, err := searcher.Search(context.Background(), Filters{Keyword: "x"}, true); err != nil {
		t.Fatalf("continuation Search() error = %v", err)
	}
	if api.searchCalls[1].PageToken != "token-1" {
		t.Errorf("continuation sent page token %q, want %q", api.searchCalls[1].PageToken, "token-1")
	}
	if got := session.PageToken(); got != "" {
		t.Errorf("PageToken() after last page = %q, want empty", got)
	}
	if session.Len() != 4 {
		t.Errorf("session Len() = %d, want 4 accumulated records", session.Len())
	}
}

func TestSearcherFreshSearchClearsSession(t *testing.T) {
	api := newFakeAPI()
	session := NewSession()
	searcher := NewSearcher(api, session, Options{})

	if _, err := searcher.Search(context.Background(), Filters{Keyword: "first"}, false); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if _, err := searcher.Search(context.Background(), Filters{Keyword: "second"}, false); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if session.Len() != 2 {
		t.Errorf("session Len() = %d, want 2 after fresh search replaced the collection", session.Len())
	}
	if got := session.Keyword(); got != "second" {
		t.Errorf("session Keyword() = %q, want %q", got, "second")
	}
	for _, r := range session.Records() {
		if r.Keyword != "second" {
			t.Errorf("record keyword = %q, want %q", r.Keyword, "second")
		}
	}
}

func TestSearcherRecencyBound(t *testing.T) {
	api := newFakeAPI()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	searcher := NewSearcher(api, NewSession(), Options{Now: func() time.Time { return now }})

	if _, err := searcher.Search(context.Background(), Filters{Keyword: "x", Recency: RecencyWeek}, false); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := now.AddDate(0, 0, -7)
	if got := api.searchCalls[0].PublishedAfter; !got.Equal(want) {
		t.Errorf("PublishedAfter = %v, want %v", got, want)
	}

	if _, err := searcher.Search(context.Background(), Filters{Keyword: "x", Recency: RecencyAny}, false); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !api.searchCalls[1].PublishedAfter.IsZero() {
		t.Errorf("PublishedAfter = %v, want zero for RecencyAny", api.searchCalls[1].PublishedAfter)
	}
}

func TestSearcherEmptyPageIsNotAnError(t *testing.T) {
	api := newFakeAPI()
	api.page = youtube.SearchPage{}
	session := NewSession()
	searcher := NewSearcher(api, session, Options{})

	records, err := searcher.Search(context.Background(), Filters{Keyword: "obscure"}, false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Search() returned %d records, want 0", len(records))
	}
	if api.detailIDs != nil {
		t.Error("VideoDetails was called for an empty search page")
	}
	if session.Len() != 0 {
		t.Errorf("session Len() = %d, want 0", session.Len())
	}
}

func TestSearcherFailureLeavesSessionUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*fakeAPI)
		wantMsg string
	}{
		{"search fails", func(f *fakeAPI) { f.searchErr = errors.New("boom") }, "search videos"},
		{"details fail", func(f *fakeAPI) { f.detailsErr = errors.New("boom") }, "video details"},
		{"channels fail", func(f *fakeAPI) { f.channelsErr = errors.New("boom") }, "channel stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			session := NewSession()
			searcher := NewSearcher(api, session, Options{})

			// Seed the session with a successful first page.
			if _, err := searcher.Search(context.Background(), Filters{Keyword: "x"}, false); err != nil {
				t.Fatalf("seed Search() error = %v", err)
			}
			before := session.Len()
			tokenBefore := session.PageToken()

			tt.prepare(api)
			_, err := searcher.Search(context.Background(), Filters{Keyword: "x"}, true)
			if err == nil {
				t.Fatal("Search() error = nil, want failure")
			}
			if got := err.Error(); len(got) < len(tt.wantMsg) || got[:len(tt.wantMsg)] != tt.wantMsg {
				t.Errorf("error = %q, want prefix %q", got, tt.wantMsg)
			}

			if session.Len() != before {
				t.Errorf("session Len() = %d, want %d (unchanged)", session.Len(), before)
			}
			if session.PageToken() != tokenBefore {
				t.Errorf("session PageToken() = %q, want %q (unchanged)", session.PageToken(), tokenBefore)
			}
		})
	}
}

func TestSearcherRejectsConcurrentSearch(t *testing.T) {
	api := newFakeAPI()
	api.searchActive = make(chan struct{})
	searcher := NewSearcher(api, NewSession(), Options{})

	done := make(chan error, 1)
	go func() {
		_, err := searcher.Search(context.Background(), Filters{Keyword: "x"}, false)
		done <- err
	}()

	<-api.searchActive // first search is now inside the API call

	_, err := searcher.Search(context.Background(), Filters{Keyword: "y"}, false)
	if !errors.Is(err, ErrSearchInFlight) {
		t.Errorf("concurrent Search() error = %v, want ErrSearchInFlight", err)
	}

	api.searchActive <- struct{}{} // release the first search
	if err := <-done; err != nil {
		t.Errorf("first Search() error = %v", err)
	}
}

func TestSearcherValidatesFilters(t *testing.T) {
	api := newFakeAPI()
	searcher := NewSearcher(api, NewSession(), Options{})

	_, err := searcher.Search(context.Background(), Filters{}, false)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Search() = %v, want *ValidationError", err)
	}
	if len(api.searchCalls) != 0 {
		t.Error("SearchVideos was called despite invalid filters")
	}
}
