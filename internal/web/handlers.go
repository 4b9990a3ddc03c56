package web

import (
	"net/http"

	"github.com/JonMunkholm/countries/internal/core"
	"github.com/JonMunkholm/countries/internal/logging"
	"github.com/JonMunkholm/countries/internal/metrics"
	"github.com/JonMunkholm/countries/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// handleIndex renders the table in the configured default language.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	lang := core.Language(s.cfg.Web.DefaultLanguage)
	s.renderLanguage(w, r, lang, core.ViewInfo{}.Title())
}

// handleLanguagePage renders every country named in one language.
func (s *Server) handleLanguagePage(w http.ResponseWriter, r *http.Request) {
	lang := core.Language(chi.URLParam(r, "language"))
	s.renderLanguage(w, r, lang, languageTitle(lang))
}

func (s *Server) renderLanguage(w http.ResponseWriter, r *http.Request, lang core.Language, title string) {
	rows, err := s.query(metrics.QueryLanguage, func() ([]core.ProjectedCountry, error) {
		return s.engine.ByLanguage(lang)
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	s.renderTable(w, r, "/language/"+string(lang), templates.TableParams{
		Title:    title,
		Language: lang,
		Rows:     rows,
		ShowFlag: s.cfg.Web.FlagsDir != "",
	})
}

// handleViewPage renders one of the registered views.
func (s *Server) handleViewPage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "viewKey")

	var def core.ViewDefinition
	rows, err := s.query(metrics.QueryView, func() ([]core.ProjectedCountry, error) {
		var rows []core.ProjectedCountry
		var err error
		def, rows, err = core.RunView(s.engine, key)
		return rows, err
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.WithFields(r.Context(), "view", key, "group", def.Info.Group).
		Debug("rendering view", "rows", len(rows))

	s.renderTable(w, r, "/view/"+key, templates.TableParams{
		Title:    def.Info.Title(),
		Language: core.DefaultLanguage,
		Rows:     rows,
		ShowFlag: s.cfg.Web.FlagsDir != "",
	})
}

// renderTable writes the full page, or only the table for HTMX requests.
// active is the href of the selected menu item.
func (s *Server) renderTable(w http.ResponseWriter, r *http.Request, active string, table templates.TableParams) {
	var c templ.Component
	if isHTMX(r) {
		c = templates.CountryTable(table)
	} else {
		c = templates.Page(templates.PageParams{
			Menu:  s.menu(active),
			Table: table,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.WithFields(r.Context(), "path", r.URL.Path).Error("render page", "error", err)
	}
}

// menu lists one item per dataset language followed by the view groups.
func (s *Server) menu(active string) []templates.MenuSection {
	langs := s.engine.Dataset().Languages()
	byLang := templates.MenuSection{Title: "Language", Items: make([]templates.MenuItem, 0, len(langs))}
	for _, lang := range langs {
		href := "/language/" + string(lang)
		byLang.Items = append(byLang.Items, templates.MenuItem{
			Label:  string(lang),
			Href:   href,
			Active: href == active,
		})
	}

	sections := []templates.MenuSection{byLang}
	for _, group := range core.Groups() {
		section := templates.MenuSection{Title: group}
		for _, def := range core.ByGroup(group) {
			href := "/view/" + def.Info.Key
			section.Items = append(section.Items, templates.MenuItem{
				Label:  def.Info.Label,
				Href:   href,
				Active: href == active,
			})
		}
		sections = append(sections, section)
	}
	return sections
}

// languageTitle is the subtitle heading of a language page.
func languageTitle(lang core.Language) string {
	return core.ViewInfo{Subtitle: "Country names in " + string(lang)}.Title()
}
