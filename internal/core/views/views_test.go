package views_test

import (
	"strings"
	"testing"

	"github.com/JonMunkholm/countries/internal/core"
	"github.com/JonMunkholm/countries/internal/core/views"
	"github.com/JonMunkholm/countries/internal/dataset"
)

func TestRegisteredViews(t *testing.T) {
	ds, err := dataset.Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	e := core.NewEngine(ds)

	tests := []struct {
		key   string
		group string
		title string
		codes string
	}{
		{"population_100m", views.GroupPopulation, "List of Countries and Dependencies - Population greater than 100 million", "US,MX,BR,CN,IN,JP,ID,PK,BD,RU,NG"},
		{"population_1m_2m", views.GroupPopulation, "List of Countries and Dependencies - Population between 1 and 2 million", "BH,EE,LV,MU"},
		{"americas_1mkm", views.GroupArea, "List of Countries and Dependencies - Countries in the Americas with an area of at least 1 million km²", "CA,US,MX,BR,AR,PE,CO"},
		{"asia_all", views.GroupArea, "List of Countries and Dependencies - All countries in Asia", "CN,IN,JP,KR,ID,PK,BD,BH,SA"},
	}

	if got := core.ViewCount(); got != len(tests) {
		t.Errorf("ViewCount() = %d, want %d", got, len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			def, rows, err := core.RunView(e, tt.key)
			if err != nil {
				t.Fatalf("RunView() error = %v", err)
			}
			if def.Info.Group != tt.group {
				t.Errorf("group = %q, want %q", def.Info.Group, tt.group)
			}
			if def.Info.Title() != tt.title {
				t.Errorf("title = %q, want %q", def.Info.Title(), tt.title)
			}

			codes := make([]string, len(rows))
			for i, r := range rows {
				codes[i] = r.Code
			}
			if got := strings.Join(codes, ","); got != tt.codes {
				t.Errorf("codes = %s, want %s", got, tt.codes)
			}
		})
	}
}

func TestGroups(t *testing.T) {
	groups := core.Groups()
	if len(groups) != 2 {
		t.Fatalf("Groups() = %v", groups)
	}
	for _, g := range []string{views.GroupPopulation, views.GroupArea} {
		if len(core.ByGroup(g)) != 2 {
			t.Errorf("ByGroup(%q) has %d views, want 2", g, len(core.ByGroup(g)))
		}
	}
}
