package core

// Engine answers the country queries over a Dataset.
//
// Every method is a pure function of the dataset and its arguments: the
// dataset is never modified and each call returns a freshly allocated slice.
type Engine struct {
	ds *Dataset
}

// NewEngine creates an Engine for ds.
func NewEngine(ds *Dataset) *Engine {
	return &Engine{ds: ds}
}

// Dataset returns the dataset the engine reads from.
func (e *Engine) Dataset() *Dataset {
	return e.ds
}

// ByLanguage projects every record onto lang, preserving dataset order.
// Returns a *LookupError if lang is not a supported label.
func (e *Engine) ByLanguage(lang Language) ([]ProjectedCountry, error) {
	if !e.ds.HasLanguage(lang) {
		return nil, &LookupError{Language: lang, Supported: e.ds.Languages()}
	}

	out := make([]ProjectedCountry, len(e.ds.records))
	for i, r := range e.ds.records {
		out[i] = project(r, lang)
	}
	return out, nil
}

// ByPopulation returns English-named countries with a population strictly
// greater than minPopulation and, when maxPopulation is non-zero, strictly
// less than maxPopulation. A zero maxPopulation means no upper bound.
func (e *Engine) ByPopulation(minPopulation, maxPopulation int64) ([]ProjectedCountry, error) {
	return e.filterDefault(func(c ProjectedCountry) bool {
		if maxPopulation != 0 {
			return c.Population > minPopulation && c.Population < maxPopulation
		}
		return c.Population > minPopulation
	})
}

// ByAreaAndContinent returns English-named countries on continent (exact,
// case-sensitive match) with an area of at least minArea km².
func (e *Engine) ByAreaAndContinent(continent string, minArea int64) ([]ProjectedCountry, error) {
	return e.filterDefault(func(c ProjectedCountry) bool {
		return c.Continent == continent && c.AreaInKm2 >= minArea
	})
}

// filterDefault keeps the DefaultLanguage projections that satisfy keep.
// The result is never nil.
func (e *Engine) filterDefault(keep func(ProjectedCountry) bool) ([]ProjectedCountry, error) {
	all, err := e.ByLanguage(DefaultLanguage)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectedCountry, 0, len(all))
	for _, c := range all {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// project resolves r's name for lang. The caller has checked lang is supported.
func project(r CountryRecord, lang Language) ProjectedCountry {
	return ProjectedCountry{
		Code:       r.Code,
		Name:       r.Name[lang],
		Continent:  r.Continent,
		AreaInKm2:  r.AreaInKm2,
		Population: r.Population,
		Capital:    r.Capital,
	}
}
