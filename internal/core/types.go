package core

// Language is a language label as it appears in a record's name mapping.
type Language string

const (
	English  Language = "English"
	Arabic   Language = "Arabic"
	Chinese  Language = "Chinese"
	French   Language = "French"
	Hindi    Language = "Hindi"
	Korean   Language = "Korean"
	Japanese Language = "Japanese"
	Russian  Language = "Russian"
)

// DefaultLanguage is the projection used by the population and area queries.
const DefaultLanguage = English

// CountryRecord is a raw entry of the dataset.
type CountryRecord struct {
	Code       string              `json:"code"`       // Two-letter code, original casing: "CA"
	Continent  string              `json:"continent"`  // "Americas", "Asia", ...
	AreaInKm2  int64               `json:"areaInKm2"`  // Non-negative
	Population int64               `json:"population"` // Non-negative
	Capital    string              `json:"capital"`    // Empty when there is no capital
	Name       map[Language]string `json:"name"`       // Localized names keyed by language label
}

// clone returns a copy of r that shares no memory with it.
func (r CountryRecord) clone() CountryRecord {
	names := make(map[Language]string, len(r.Name))
	for lang, name := range r.Name {
		names[lang] = name
	}
	r.Name = names
	return r
}

// ProjectedCountry is a CountryRecord with its name resolved for one language.
// Field order matches the rendered table columns after the flag.
type ProjectedCountry struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Continent  string `json:"continent"`
	AreaInKm2  int64  `json:"areaInKm2"`
	Population int64  `json:"population"`
	Capital    string `json:"capital"`
}

// ViewInfo contains display information about a named view.
type ViewInfo struct {
	Key      string // Unique identifier: "population_100m"
	Group    string // Menu section: "Population", "Area"
	Label    string // Menu label: "Population > 100M"
	Subtitle string // Heading suffix shown above the table
}

// RunFunc executes a view against an engine.
type RunFunc func(e *Engine) ([]ProjectedCountry, error)

// ViewDefinition contains everything needed to show a named view.
type ViewDefinition struct {
	Info ViewInfo
	Run  RunFunc
}

// SubtitlePrefix is the heading shared by every rendered table.
const SubtitlePrefix = "List of Countries and Dependencies"

// Title returns the full heading for a view.
func (v ViewInfo) Title() string {
	if v.Subtitle == "" {
		return SubtitlePrefix
	}
	return SubtitlePrefix + " - " + v.Subtitle
}
