package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/countries/internal/config"
	"github.com/JonMunkholm/countries/internal/core"
)

func TestEmbedded(t *testing.T) {
	ds, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}

	if ds.Len() != 29 {
		t.Errorf("Len() = %d, want 29", ds.Len())
	}

	wantLangs := []core.Language{
		core.English, core.Arabic, core.Chinese, core.French,
		core.Hindi, core.Japanese, core.Korean, core.Russian,
	}
	if !reflect.DeepEqual(ds.Languages(), wantLangs) {
		t.Errorf("Languages() = %v, want %v", ds.Languages(), wantLangs)
	}

	wantConts := []string{"Africa", "Americas", "Antarctica", "Asia", "Europe", "Oceania"}
	if !reflect.DeepEqual(ds.Continents(), wantConts) {
		t.Errorf("Continents() = %v, want %v", ds.Continents(), wantConts)
	}
}

func TestEmbedded_Canada(t *testing.T) {
	ds, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	e := core.NewEngine(ds)

	rows, err := e.ByLanguage(core.French)
	if err != nil {
		t.Fatalf("ByLanguage() error = %v", err)
	}
	want := core.ProjectedCountry{
		Code: "CA", Name: "Canada", Continent: "Americas",
		AreaInKm2: 9984670, Population: 36624199, Capital: "Ottawa",
	}
	if rows[0] != want {
		t.Errorf("rows[0] = %+v, want %+v", rows[0], want)
	}

	in, _ := e.ByAreaAndContinent("Americas", 9984670)
	if len(in) != 1 || in[0].Code != "CA" {
		t.Errorf("ByAreaAndContinent(Americas, 9984670) = %v, want [CA]", in)
	}
	out, _ := e.ByAreaAndContinent("Americas", 9984671)
	if len(out) != 0 {
		t.Errorf("ByAreaAndContinent(Americas, 9984671) = %v, want empty", out)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantInvalid bool
	}{
		{"malformed json", `[{"code": "CA"`, false},
		{"unknown field", `[{"code": "CA", "flag": "ca.png"}]`, false},
		{"empty array", `[]`, true},
		{"duplicate codes", `[
			{"code": "CA", "continent": "Americas", "name": {"English": "Canada"}},
			{"code": "CA", "continent": "Americas", "name": {"English": "Canada"}}
		]`, true},
		{"mismatched names", `[
			{"code": "CA", "continent": "Americas", "name": {"English": "Canada", "French": "Canada"}},
			{"code": "US", "continent": "Americas", "name": {"English": "United States"}}
		]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, core.ErrInvalidDataset); got != tt.wantInvalid {
				t.Errorf("errors.Is(err, ErrInvalidDataset) = %v, want %v (err = %v)", got, tt.wantInvalid, err)
			}
		})
	}
}

const smallJSON = `[
	{"code": "CA", "continent": "Americas", "areaInKm2": 9984670, "population": 36624199,
	 "capital": "Ottawa", "name": {"English": "Canada", "French": "Canada"}},
	{"code": "AQ", "continent": "Antarctica", "areaInKm2": 14000000, "population": 1106,
	 "capital": "", "name": {"English": "Antarctica", "French": "Antarctique"}}
]`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.json")
	if err := os.WriteFile(path, []byte(smallJSON), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	ds, err := LoadFile(writeDataset(t))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ds.Len())
	}
	if got := ds.Records()[1].Capital; got != "" {
		t.Errorf("Capital = %q, want empty", got)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if code := core.MapError(err).Code; code != "DATA002" {
		t.Errorf("MapError code = %q, want DATA002", code)
	}
}

func TestLoad_SelectsSource(t *testing.T) {
	ctx := context.Background()

	ds, source, err := Load(ctx, config.DatasetConfig{Path: writeDataset(t)})
	if err != nil {
		t.Fatalf("Load(file) error = %v", err)
	}
	if source != SourceFile || ds.Len() != 2 {
		t.Errorf("Load(file) = %s/%d, want %s/2", source, ds.Len(), SourceFile)
	}

	ds, source, err = Load(ctx, config.DatasetConfig{})
	if err != nil {
		t.Fatalf("Load(embedded) error = %v", err)
	}
	if source != SourceEmbedded || ds.Len() != 29 {
		t.Errorf("Load(embedded) = %s/%d, want %s/29", source, ds.Len(), SourceEmbedded)
	}
}

func TestLoad_BadDatabaseURL(t *testing.T) {
	_, source, err := Load(context.Background(), config.DatasetConfig{
		DatabaseURL: "postgres://%zz",
		LoadTimeout: time.Second,
	})
	if err == nil {
		t.Fatal("expected error for malformed database URL")
	}
	if source != SourcePostgres {
		t.Errorf("source = %q, want %q", source, SourcePostgres)
	}
}
