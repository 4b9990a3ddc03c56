package core

import (
	"sort"
	"strings"
)

// ValidateRecords checks the load-time invariants of a raw dataset:
//   - at least one record
//   - codes are non-empty and unique
//   - area and population are non-negative
//   - every record carries the same set of language keys
//   - DefaultLanguage is one of them
//
// The returned error wraps ErrInvalidDataset and reports the first violation.
func ValidateRecords(records []CountryRecord) error {
	if len(records) == 0 {
		return invalidf("no records")
	}

	want := languageKeys(records[0])
	if len(want) == 0 {
		return invalidf("record %q has no names", records[0].Code)
	}
	if _, ok := records[0].Name[DefaultLanguage]; !ok {
		return invalidf("language %q is required", DefaultLanguage)
	}
	wantKey := strings.Join(want, "|")

	codes := make(map[string]int, len(records))
	for i, r := range records {
		if r.Code == "" {
			return invalidf("record %d has an empty code", i)
		}
		if prev, dup := codes[r.Code]; dup {
			return invalidf("duplicate code %q at records %d and %d", r.Code, prev, i)
		}
		codes[r.Code] = i

		if r.AreaInKm2 < 0 {
			return invalidf("record %q has negative area %d", r.Code, r.AreaInKm2)
		}
		if r.Population < 0 {
			return invalidf("record %q has negative population %d", r.Code, r.Population)
		}

		if got := languageKeys(r); strings.Join(got, "|") != wantKey {
			return invalidf("record %q has languages %v, want %v", r.Code, got, want)
		}
	}

	return nil
}

// languageKeys returns the sorted language labels of a record.
func languageKeys(r CountryRecord) []string {
	keys := make([]string, 0, len(r.Name))
	for lang := range r.Name {
		keys = append(keys, string(lang))
	}
	sort.Strings(keys)
	return keys
}
