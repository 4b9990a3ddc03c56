package core

import (
	"sort"

	"github.com/google/uuid"
)

// Dataset is the immutable, validated set of country records.
//
// A Dataset is safe for concurrent use: nothing inside it changes after
// NewDataset returns, and every accessor hands out copies.
type Dataset struct {
	id         uuid.UUID
	records    []CountryRecord
	languages  []Language
	langSet    map[Language]struct{}
	continents []string
}

// NewDataset validates records and takes a private copy of them.
// The caller may modify its slice afterwards without affecting the dataset.
func NewDataset(records []CountryRecord) (*Dataset, error) {
	if err := ValidateRecords(records); err != nil {
		return nil, err
	}

	owned := make([]CountryRecord, len(records))
	for i, r := range records {
		owned[i] = r.clone()
	}

	ds := &Dataset{
		id:      uuid.New(),
		records: owned,
		langSet: make(map[Language]struct{}, len(owned[0].Name)),
	}

	// Every record has the same keys, so the first one is enough.
	for lang := range owned[0].Name {
		ds.langSet[lang] = struct{}{}
		ds.languages = append(ds.languages, lang)
	}
	sortLanguages(ds.languages)

	seen := make(map[string]bool)
	for _, r := range owned {
		if !seen[r.Continent] {
			seen[r.Continent] = true
			ds.continents = append(ds.continents, r.Continent)
		}
	}
	sort.Strings(ds.continents)

	return ds, nil
}

// sortLanguages orders labels alphabetically with DefaultLanguage first.
func sortLanguages(langs []Language) {
	sort.Slice(langs, func(i, j int) bool {
		if langs[i] == DefaultLanguage || langs[j] == DefaultLanguage {
			return langs[i] == DefaultLanguage && langs[j] != DefaultLanguage
		}
		return langs[i] < langs[j]
	})
}

// ID identifies this load of the dataset. A new ID is generated per NewDataset call.
func (d *Dataset) ID() uuid.UUID {
	return d.id
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Languages returns the supported language labels, DefaultLanguage first.
func (d *Dataset) Languages() []Language {
	out := make([]Language, len(d.languages))
	copy(out, d.languages)
	return out
}

// HasLanguage reports whether lang is a supported label.
func (d *Dataset) HasLanguage(lang Language) bool {
	_, ok := d.langSet[lang]
	return ok
}

// Continents returns the distinct continent names, sorted.
func (d *Dataset) Continents() []string {
	out := make([]string, len(d.continents))
	copy(out, d.continents)
	return out
}

// Records returns a deep copy of the raw records in original order.
func (d *Dataset) Records() []CountryRecord {
	out := make([]CountryRecord, len(d.records))
	for i, r := range d.records {
		out[i] = r.clone()
	}
	return out
}
