// Package web serves the research UI and its JSON/HTML API.
package web

import (
	"context"
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"

	"ytresearch/config"
	"ytresearch/export"
	"ytresearch/internal/httpclient"
	"ytresearch/internal/logging"
	"ytresearch/research"
	"ytresearch/settings"
)

//go:embed templates/*.html
var templateFS embed.FS

// APIFactory builds a YouTube API client for the given key. It exists so
// handler tests can substitute a fake, and so a key change in settings takes
// effect without a restart.
type APIFactory func(ctx context.Context, apiKey string) (research.VideoAPI, error)

// Server holds the handlers and the per-process research state.
type Server struct {
	cfg      *config.Config
	store    *settings.Store
	session  *research.Session
	exporter *export.Client
	newAPI   APIFactory
	tpl      *template.Template

	// searcher is rebuilt when the stored API key changes.
	mu       sync.Mutex
	apiKey   string
	searcher *research.Searcher

	// exporting guards against duplicate concurrent submissions of the
	// same batch, mirroring the export-control disablement in the UI.
	exporting atomic.Bool
}

// NewServer creates the web server over the given collaborators.
func NewServer(cfg *config.Config, store *settings.Store, exporter *export.Client, newAPI APIFactory) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		session:  research.NewSession(),
		exporter: exporter,
		newAPI:   newAPI,
		tpl:      template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handleSaveSettings).Methods(http.MethodPut)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodPost)
	api.HandleFunc("/search/next", s.handleSearchNext).Methods(http.MethodPost)
	api.HandleFunc("/export", s.handleExport).Methods(http.MethodPost)
	api.HandleFunc("/results.csv", s.handleResultsCSV).Methods(http.MethodGet)

	return logging.RequestLogger(r)
}

// searcherFor returns a searcher bound to the given API key, rebuilding it
// when the key changed since the last call. The session survives rebuilds.
func (s *Server) searcherFor(ctx context.Context, apiKey string) (*research.Searcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.searcher != nil && s.apiKey == apiKey {
		return s.searcher, nil
	}

	api, err := s.newAPI(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	s.apiKey = apiKey
	s.searcher = research.NewSearcher(api, s.session, research.Options{
		PageSize:             s.cfg.PageSize,
		EngagementMultiplier: s.cfg.EngagementMultiplier,
		RegionCode:           s.cfg.RegionCode,
		RelevanceLanguage:    s.cfg.RelevanceLanguage,
	})
	return s.searcher, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleIndex serves the single page: the onboarding wizard when settings
// are incomplete, otherwise the search surface with the session's results.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	records := s.session.Records()
	data := struct {
		Complete bool
		Keyword  string
		Cards    []cardView
		HasMore  bool
	}{
		Complete: s.store.IsComplete(),
		Keyword:  s.session.Keyword(),
		Cards:    newCardViews(records),
		HasMore:  s.session.PageToken() != "",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.ExecuteTemplate(w, "index.html", data); err != nil {
		logging.Logger.Error().Err(err).Msg("render index")
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Load())
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var creds settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.store.Save(creds); err != nil {
		var verr *settings.ValidationError
		if errors.As(err, &verr) {
			writeFieldError(w, verr.Field)
			return
		}
		logging.Logger.Error().Err(err).Msg("save settings")
		writeError(w, http.StatusInternalServerError, "could not persist settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

// handleSearch starts a fresh search, clearing the session.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.search(w, r, false)
}

// handleSearchNext continues the previous search at the stored page token.
func (s *Server) handleSearchNext(w http.ResponseWriter, r *http.Request) {
	s.search(w, r, true)
}

// search runs the chained search and responds with the rendered card
// fragment for the new batch. The page script replaces the results grid on a
// fresh search and appends on a continuation.
func (s *Server) search(w http.ResponseWriter, r *http.Request, continuation bool) {
	creds := s.store.Load()
	if !creds.IsComplete() {
		writeError(w, http.StatusUnprocessableEntity, "settings incomplete, finish onboarding first")
		return
	}

	var filters research.Filters
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	searcher, err := s.searcherFor(r.Context(), creds.APIKey)
	if err != nil {
		logging.Logger.Error().Err(err).Msg("build youtube client")
		writeError(w, http.StatusBadGateway, "could not reach the video API")
		return
	}

	records, err := searcher.Search(r.Context(), filters, continuation)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}

	w.Header().Set("X-Batch-Count", strconv.Itoa(len(records)))
	w.Header().Set("X-Total-Count", strconv.Itoa(s.session.Len()))
	w.Header().Set("X-Has-More", strconv.FormatBool(s.session.PageToken() != ""))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.ExecuteTemplate(w, "cards.html", struct{ Cards []cardView }{newCardViews(records)}); err != nil {
		logging.Logger.Error().Err(err).Msg("render cards")
	}
}

func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	var verr *research.ValidationError
	switch {
	case errors.As(err, &verr):
		writeFieldError(w, verr.Field)
	case errors.Is(err, research.ErrSearchInFlight):
		writeError(w, http.StatusConflict, "a search is already running")
	default:
		logging.Logger.Error().Err(err).Msg("search failed")
		writeError(w, http.StatusBadGateway, "search failed: "+err.Error())
	}
}

// handleExport posts the accumulated session records to the webhook.
// A second export while one is running is rejected.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !s.exporting.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "an export is already running")
		return
	}
	defer s.exporting.Store(false)

	receipt, err := s.exporter.Export(r.Context(), s.session.Records(), s.session.Keyword(), s.store.Load())
	if err != nil {
		s.writeExportError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) writeExportError(w http.ResponseWriter, err error) {
	var verr *settings.ValidationError
	var herr *httpclient.HTTPError
	switch {
	case errors.As(err, &verr):
		writeFieldError(w, verr.Field)
	case errors.Is(err, export.ErrNoRecords):
		writeError(w, http.StatusUnprocessableEntity, "nothing to export yet, run a search first")
	case errors.As(err, &herr):
		writeError(w, http.StatusBadGateway, "webhook rejected the export: "+herr.Error())
	default:
		logging.Logger.Error().Err(err).Msg("export failed")
		writeError(w, http.StatusBadGateway, "export failed: "+err.Error())
	}
}

// csvHeader is the fixed nine-column header, matching the sheet layout the
// webhook writes.
var csvHeader = []string{"title", "channel", "views", "subs", "url", "thumbnail", "duration", "publishedAt", "searchQuery"}

// handleResultsCSV downloads the session's records as CSV.
func (s *Server) handleResultsCSV(w http.ResponseWriter, r *http.Request) {
	records := s.session.Records()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)

	cw := csv.NewWriter(w)
	cw.Write(csvHeader)
	for _, rec := range records {
		cw.Write([]string{
			rec.Title,
			rec.ChannelTitle,
			strconv.FormatUint(rec.ViewCount, 10),
			strconv.FormatUint(rec.Subscribers, 10),
			rec.WatchURL,
			rec.Thumbnail,
			rec.DurationDisplay,
			rec.Published.Format("2006-01-02"),
			rec.Keyword,
		})
	}
	cw.Flush()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeFieldError(w http.ResponseWriter, field string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error": "missing or invalid field",
		"field": field,
	})
}
