package core

import (
	"errors"
	"reflect"
	"testing"
)

// fixtureRecords returns a small dataset with boundary-friendly numbers.
func fixtureRecords() []CountryRecord {
	return []CountryRecord{
		{
			Code: "CA", Continent: "Americas", AreaInKm2: 9984670, Population: 36624199, Capital: "Ottawa",
			Name: map[Language]string{English: "Canada", French: "Canada"},
		},
		{
			Code: "EE", Continent: "Europe", AreaInKm2: 45227, Population: 1000000, Capital: "Tallinn",
			Name: map[Language]string{English: "Estonia", French: "Estonie"},
		},
		{
			Code: "LV", Continent: "Europe", AreaInKm2: 64559, Population: 1949670, Capital: "Riga",
			Name: map[Language]string{English: "Latvia", French: "Lettonie"},
		},
		{
			Code: "SI", Continent: "Europe", AreaInKm2: 20273, Population: 2000000, Capital: "Ljubljana",
			Name: map[Language]string{English: "Slovenia", French: "Slovénie"},
		},
		{
			Code: "JP", Continent: "Asia", AreaInKm2: 377930, Population: 127484450, Capital: "Tokyo",
			Name: map[Language]string{English: "Japan", French: "Japon"},
		},
		{
			Code: "BH", Continent: "Asia", AreaInKm2: 765, Population: 1492584, Capital: "Manama",
			Name: map[Language]string{English: "Bahrain", French: "Bahreïn"},
		},
		{
			Code: "AQ", Continent: "Antarctica", AreaInKm2: 14000000, Population: 0, Capital: "",
			Name: map[Language]string{English: "Antarctica", French: "Antarctique"},
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	ds, err := NewDataset(fixtureRecords())
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	return NewEngine(ds)
}

func codes(rows []ProjectedCountry) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Code
	}
	return out
}

func TestByLanguage_ProjectsEveryRecord(t *testing.T) {
	e := newTestEngine(t)
	raw := fixtureRecords()

	for _, lang := range []Language{English, French} {
		t.Run(string(lang), func(t *testing.T) {
			got, err := e.ByLanguage(lang)
			if err != nil {
				t.Fatalf("ByLanguage(%q) error = %v", lang, err)
			}
			if len(got) != len(raw) {
				t.Fatalf("len = %d, want %d", len(got), len(raw))
			}
			for i, r := range raw {
				want := ProjectedCountry{
					Code:       r.Code,
					Name:       r.Name[lang],
					Continent:  r.Continent,
					AreaInKm2:  r.AreaInKm2,
					Population: r.Population,
					Capital:    r.Capital,
				}
				if got[i] != want {
					t.Errorf("row %d = %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}

func TestByLanguage_Canada(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.ByLanguage(French)
	if err != nil {
		t.Fatalf("ByLanguage() error = %v", err)
	}

	want := ProjectedCountry{
		Code: "CA", Name: "Canada", Continent: "Americas",
		AreaInKm2: 9984670, Population: 36624199, Capital: "Ottawa",
	}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestByLanguage_Unsupported(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.ByLanguage(Korean)
	if err == nil {
		t.Fatal("expected error for unsupported language")
	}
	if got != nil {
		t.Errorf("expected nil rows, got %v", got)
	}
	if !errors.Is(err, ErrLanguageNotFound) {
		t.Errorf("errors.Is(err, ErrLanguageNotFound) = false, err = %v", err)
	}

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *LookupError, got %T", err)
	}
	if lookupErr.Language != Korean {
		t.Errorf("Language = %q, want %q", lookupErr.Language, Korean)
	}
	if !reflect.DeepEqual(lookupErr.Supported, []Language{English, French}) {
		t.Errorf("Supported = %v", lookupErr.Supported)
	}
}

func TestByPopulation(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name string
		min  int64
		max  int64
		want []string
	}{
		{
			name: "unbounded above",
			min:  100000000,
			want: []string{"JP"},
		},
		{
			name: "both bounds exclusive",
			min:  1000000,
			max:  2000000,
			want: []string{"LV", "BH"},
		},
		{
			name: "equal to min is excluded without max",
			min:  36624199,
			want: []string{"JP"},
		},
		{
			name: "zero max falls back to lower bound only",
			min:  1000000,
			max:  0,
			want: []string{"CA", "LV", "SI", "JP", "BH"},
		},
		{
			name: "negative min includes zero population",
			min:  -1,
			want: []string{"CA", "EE", "LV", "SI", "JP", "BH", "AQ"},
		},
		{
			name: "zero min excludes zero population",
			min:  0,
			want: []string{"CA", "EE", "LV", "SI", "JP", "BH"},
		},
		{
			name: "empty range",
			min:  2000000,
			max:  2000001,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ByPopulation(tt.min, tt.max)
			if err != nil {
				t.Fatalf("ByPopulation() error = %v", err)
			}
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if !reflect.DeepEqual(codes(got), tt.want) {
				t.Errorf("codes = %v, want %v", codes(got), tt.want)
			}
		})
	}
}

func TestByPopulation_ZeroMaxIsLowerBoundOnly(t *testing.T) {
	e := newTestEngine(t)

	for _, p := range []int64{-5, 0, 1000000, 1949670, 50000000} {
		got, err := e.ByPopulation(p, 0)
		if err != nil {
			t.Fatalf("ByPopulation(%d, 0) error = %v", p, err)
		}

		want := []string{}
		for _, r := range fixtureRecords() {
			if r.Population > p {
				want = append(want, r.Code)
			}
		}
		if !reflect.DeepEqual(codes(got), want) {
			t.Errorf("p=%d: codes = %v, want %v", p, codes(got), want)
		}
	}
}

func TestByPopulation_Monotonic(t *testing.T) {
	e := newTestEngine(t)

	prev := -1
	for _, p := range []int64{-1, 0, 1000000, 1492584, 1949670, 2000000, 36624199, 127484450} {
		got, err := e.ByPopulation(p, 0)
		if err != nil {
			t.Fatalf("ByPopulation(%d) error = %v", p, err)
		}
		if prev >= 0 && len(got) > prev {
			t.Errorf("p=%d: len %d grew from %d", p, len(got), prev)
		}
		prev = len(got)
	}
}

func TestByPopulation_UsesEnglishNames(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.ByPopulation(100000000, 0)
	if err != nil {
		t.Fatalf("ByPopulation() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Japan" {
		t.Errorf("got %+v, want Japan", got)
	}
}

func TestByAreaAndContinent(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name      string
		continent string
		minArea   int64
		want      []string
	}{
		{"equal area is included", "Americas", 9984670, []string{"CA"}},
		{"area above record excludes it", "Americas", 9984671, []string{}},
		{"zero area returns whole continent", "Asia", 0, []string{"JP", "BH"}},
		{"threshold splits continent", "Europe", 45227, []string{"EE", "LV"}},
		{"unknown continent", "Nonexistent", 0, []string{}},
		{"case sensitive", "asia", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ByAreaAndContinent(tt.continent, tt.minArea)
			if err != nil {
				t.Fatalf("ByAreaAndContinent() error = %v", err)
			}
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if !reflect.DeepEqual(codes(got), tt.want) {
				t.Errorf("codes = %v, want %v", codes(got), tt.want)
			}
		})
	}
}

func TestQueries_FreshAllocations(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name string
		run  func() ([]ProjectedCountry, error)
	}{
		{"ByLanguage", func() ([]ProjectedCountry, error) { return e.ByLanguage(English) }},
		{"ByPopulation", func() ([]ProjectedCountry, error) { return e.ByPopulation(0, 0) }},
		{"ByPopulation bounded", func() ([]ProjectedCountry, error) { return e.ByPopulation(0, 2_000_000) }},
		{"ByAreaAndContinent", func() ([]ProjectedCountry, error) { return e.ByAreaAndContinent("Americas", 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.run()
			if err != nil {
				t.Fatalf("first call error = %v", err)
			}
			b, err := tt.run()
			if err != nil {
				t.Fatalf("second call error = %v", err)
			}
			if len(a) == 0 {
				t.Fatal("expected a non-empty result")
			}
			if !reflect.DeepEqual(a, b) {
				t.Fatal("repeated calls returned different results")
			}
			if &a[0] == &b[0] {
				t.Fatal("repeated calls share backing array")
			}

			want := b[0].Name
			a[0].Name = "changed"
			c, _ := tt.run()
			if c[0].Name != want {
				t.Errorf("mutating a result leaked into the engine: %q", c[0].Name)
			}
		})
	}
}

func TestQueries_DoNotMutateDataset(t *testing.T) {
	e := newTestEngine(t)
	before := e.Dataset().Records()

	_, _ = e.ByLanguage(French)
	_, _ = e.ByPopulation(1000000, 2000000)
	_, _ = e.ByAreaAndContinent("Asia", 0)
	_, _ = e.ByLanguage(Korean)

	if !reflect.DeepEqual(before, e.Dataset().Records()) {
		t.Error("dataset changed after queries")
	}
}
