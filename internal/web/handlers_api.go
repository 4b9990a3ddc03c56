package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/countries/internal/core"
	"github.com/JonMunkholm/countries/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// LanguagesResponse lists the dataset languages.
type LanguagesResponse struct {
	Default   core.Language   `json:"default"`
	Languages []core.Language `json:"languages"`
}

// ViewResponse describes one registered view.
type ViewResponse struct {
	Key   string `json:"key"`
	Group string `json:"group"`
	Label string `json:"label"`
	Title string `json:"title"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	DatasetID string `json:"datasetId"`
	Records   int    `json:"records"`
}

func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, LanguagesResponse{
		Default:   core.Language(s.cfg.Web.DefaultLanguage),
		Languages: s.engine.Dataset().Languages(),
	})
}

func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	defs := core.All()
	resp := make([]ViewResponse, 0, len(defs))
	for _, def := range defs {
		resp = append(resp, ViewResponse{
			Key:   def.Info.Key,
			Group: def.Info.Group,
			Label: def.Info.Label,
			Title: def.Info.Title(),
		})
	}
	writeJSON(w, resp)
}

// ContinentsResponse lists the distinct continents of the dataset.
type ContinentsResponse struct {
	Continents []string `json:"continents"`
}

func (s *Server) handleListContinents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ContinentsResponse{Continents: s.engine.Dataset().Continents()})
}

// handleCountriesByLanguage serves /api/countries?language=French.
// Without a language the English names are returned.
func (s *Server) handleCountriesByLanguage(w http.ResponseWriter, r *http.Request) {
	lang := core.DefaultLanguage
	if l := strings.TrimSpace(r.URL.Query().Get("language")); l != "" {
		lang = core.Language(l)
	}

	rows, err := s.query(metrics.QueryLanguage, func() ([]core.ProjectedCountry, error) {
		return s.engine.ByLanguage(lang)
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.writeCountries(w, r, "countries_"+strings.ToLower(string(lang)), rows)
}

// handleCountriesByPopulation serves /api/countries/population?min=&max=.
// Both bounds are exclusive; max=0 or no max means no upper bound.
func (s *Server) handleCountriesByPopulation(w http.ResponseWriter, r *http.Request) {
	minPop, err := int64Param(r, "min", true, 0)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	maxPop, err := int64Param(r, "max", false, 0)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	rows, err := s.query(metrics.QueryPopulation, func() ([]core.ProjectedCountry, error) {
		return s.engine.ByPopulation(minPop, maxPop)
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	name := "countries_population_" + strconv.FormatInt(minPop, 10)
	if maxPop != 0 {
		name += "_" + strconv.FormatInt(maxPop, 10)
	}
	s.writeCountries(w, r, name, rows)
}

// handleCountriesByArea serves /api/countries/area?continent=Asia&min=0.
// The area bound is inclusive and defaults to 0.
func (s *Server) handleCountriesByArea(w http.ResponseWriter, r *http.Request) {
	continent, err := stringParam(r, "continent")
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	minArea, err := int64Param(r, "min", false, 0)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	rows, err := s.query(metrics.QueryArea, func() ([]core.ProjectedCountry, error) {
		return s.engine.ByAreaAndContinent(continent, minArea)
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.writeCountries(w, r, "countries_"+strings.ToLower(continent)+"_"+strconv.FormatInt(minArea, 10), rows)
}

func (s *Server) handleViewData(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "viewKey")

	rows, err := s.query(metrics.QueryView, func() ([]core.ProjectedCountry, error) {
		_, rows, err := core.RunView(s.engine, key)
		return rows, err
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.writeCountries(w, r, key, rows)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.engine.Dataset()
	writeJSON(w, HealthResponse{
		Status:    "ok",
		DatasetID: ds.ID().String(),
		Records:   ds.Len(),
	})
}
