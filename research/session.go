package research

import (
	"errors"
	"sync"
)

// ErrSearchInFlight indicates a search was requested while another one is
// still running in the same session. The new search is rejected; the prior
// chain is never cancelled mid-flight.
var ErrSearchInFlight = errors.New("research: search already in flight")

// Session holds the state accumulated across one research sitting: the
// append-only result collection, the continuation token, and the keyword the
// collection was fetched under. It is safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	records   []Record
	pageToken string
	keyword   string
	inFlight  bool
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// begin marks a search as running. Returns ErrSearchInFlight if one already is.
func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrSearchInFlight
	}
	s.inFlight = true
	return nil
}

// end marks the running search as finished.
func (s *Session) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// reset clears the collection and token for a fresh search under keyword.
func (s *Session) reset(keyword string) {
	s.mu.Lock()
	s.records = nil
	s.pageToken = ""
	s.keyword = keyword
	s.mu.Unlock()
}

// commit appends a batch of records and stores the new continuation token.
// Called exactly once per successful chain; a failed chain commits nothing.
func (s *Session) commit(records []Record, nextToken string) {
	s.mu.Lock()
	s.records = append(s.records, records...)
	s.pageToken = nextToken
	s.mu.Unlock()
}

// Records returns a copy of the accumulated result collection.
func (s *Session) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of accumulated records.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// PageToken returns the stored continuation token. Empty means first page or
// no more pages.
func (s *Session) PageToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageToken
}

// Keyword returns the keyword the current collection was fetched under.
func (s *Session) Keyword() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyword
}
