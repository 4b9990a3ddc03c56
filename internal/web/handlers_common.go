package web

// Shared helpers for page and API handlers.

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/countries/internal/core"
	"github.com/JonMunkholm/countries/internal/render"
)

// paramError reports a missing or malformed query parameter.
type paramError struct {
	name  string
	value string
	kind  paramErrorKind
}

type paramErrorKind int

const (
	paramMissing paramErrorKind = iota
	paramNotNumber
	paramUnsupported
)

func (e *paramError) Error() string {
	switch e.kind {
	case paramMissing:
		return "missing parameter: " + e.name
	case paramNotNumber:
		return fmt.Sprintf("invalid number for %q: %q", e.name, e.value)
	default:
		return fmt.Sprintf("invalid value for %q: %q", e.name, e.value)
	}
}

// int64Param parses a whole-number query parameter. An absent or empty
// parameter yields def, or a paramError when required is set.
func int64Param(r *http.Request, name string, required bool, def int64) (int64, error) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		if required {
			return 0, &paramError{name: name, kind: paramMissing}
		}
		return def, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, &paramError{name: name, value: val, kind: paramNotNumber}
	}
	return n, nil
}

// stringParam returns a required, non-empty query parameter.
func stringParam(r *http.Request, name string) (string, error) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return "", &paramError{name: name, kind: paramMissing}
	}
	return val, nil
}

// query runs fn and records its outcome under name.
func (s *Server) query(name string, fn func() ([]core.ProjectedCountry, error)) ([]core.ProjectedCountry, error) {
	rows, err := fn()
	s.metrics.ObserveQuery(name, len(rows), err)
	return rows, err
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// writeCountries writes rows as JSON, or as a CSV download when the request
// has ?format=csv. filename is used for Content-Disposition.
//
// Only successful results carry an ETag and answer If-None-Match with 304.
func (s *Server) writeCountries(w http.ResponseWriter, r *http.Request, filename string, rows []core.ProjectedCountry) {
	format := render.FormatJSON
	if f := strings.ToLower(r.URL.Query().Get("format")); f != "" {
		format = render.Format(f)
	}
	if format != render.FormatJSON && format != render.FormatCSV {
		s.respondError(w, r, &paramError{name: "format", value: string(format), kind: paramUnsupported}, http.StatusBadRequest)
		return
	}

	tag := s.etagFor(format)
	w.Header().Set("ETag", tag)
	if etagMatch(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	switch format {
	case render.FormatCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		if err := render.WriteCSV(w, rows); err != nil {
			slog.Error("csv write error", "error", err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		if err := render.WriteJSON(w, rows); err != nil {
			slog.Error("json encode error", "error", err)
		}
	}
}

// etagFor is the weak validator of a country response in format. The
// dataset never changes while the server runs.
func (s *Server) etagFor(format render.Format) string {
	return `W/"` + s.engine.Dataset().ID().String() + "-" + string(format) + `"`
}

// etagMatch implements the weak comparison of If-None-Match.
func etagMatch(header, tag string) bool {
	tag = strings.TrimPrefix(tag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}
