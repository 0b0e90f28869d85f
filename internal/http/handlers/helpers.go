package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	jsoniter "github.com/json-iterator/go"

	"github.com/mauv0809/statsmock/internal/apperror"
	"github.com/mauv0809/statsmock/internal/stats"
)

// Paging defaults for the listing endpoints.
const (
	DefaultPage    = 1
	DefaultPerPage = 25
)

// json sorts map keys so identical data always encodes to identical bytes.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error("Failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps err to its status code. Client errors carry their message;
// anything else is logged and hidden behind a generic one.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("Request failed", "url", r.URL.String(), "error", err)
		msg = "Internal server error"
	} else {
		log.FromContext(r.Context()).Debug("Request rejected", "url", r.URL.String(), "status", status, "error", msg)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// username returns the user query parameter, or the current user when the
// parameter is absent. A present but empty value is kept as is.
func username(r *http.Request, store stats.Store) string {
	q := r.URL.Query()
	if !q.Has("user") {
		return store.CurrentUser()
	}
	return q.Get("user")
}

// paging reads page and per_page, falling back to the defaults when absent.
func paging(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	page, err := positiveInt(q.Get("page"), DefaultPage)
	if err != nil {
		return 0, 0, stats.ErrInvalidPage
	}
	perPage, err := positiveInt(q.Get("per_page"), DefaultPerPage)
	if err != nil {
		return 0, 0, stats.ErrInvalidPageSize
	}
	return page, perPage, nil
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
