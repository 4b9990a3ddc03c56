// Package views registers the named country views shown in the menu.
// Import it for side effects:
//
//	import _ "github.com/JonMunkholm/countries/internal/core/views"
package views

import "github.com/JonMunkholm/countries/internal/core"

const (
	GroupPopulation = "Population"
	GroupArea       = "Area"
)

func init() {
	core.Register(core.ViewDefinition{
		Info: core.ViewInfo{
			Key:      "population_100m",
			Group:    GroupPopulation,
			Label:    "Population > 100M",
			Subtitle: "Population greater than 100 million",
		},
		Run: populationAbove(100_000_000),
	})

	core.Register(core.ViewDefinition{
		Info: core.ViewInfo{
			Key:      "population_1m_2m",
			Group:    GroupPopulation,
			Label:    "Population 1M-2M",
			Subtitle: "Population between 1 and 2 million",
		},
		Run: populationBetween(1_000_000, 2_000_000),
	})

	core.Register(core.ViewDefinition{
		Info: core.ViewInfo{
			Key:      "americas_1mkm",
			Group:    GroupArea,
			Label:    "Americas > 1M km²",
			Subtitle: "Countries in the Americas with an area of at least 1 million km²",
		},
		Run: continentArea("Americas", 1_000_000),
	})

	core.Register(core.ViewDefinition{
		Info: core.ViewInfo{
			Key:      "asia_all",
			Group:    GroupArea,
			Label:    "All of Asia",
			Subtitle: "All countries in Asia",
		},
		Run: continentArea("Asia", 0),
	})
}

func populationAbove(min int64) core.RunFunc {
	return func(e *core.Engine) ([]core.ProjectedCountry, error) {
		return e.ByPopulation(min, 0)
	}
}

func populationBetween(min, max int64) core.RunFunc {
	return func(e *core.Engine) ([]core.ProjectedCountry, error) {
		return e.ByPopulation(min, max)
	}
}

func continentArea(continent string, minArea int64) core.RunFunc {
	return func(e *core.Engine) ([]core.ProjectedCountry, error) {
		return e.ByAreaAndContinent(continent, minArea)
	}
}
