// Package core provides the query layer over the countries dataset.
//
// The package holds no UI or transport code. Web handlers, the CLI and
// tests all drive it the same way:
//
//	ds, err := core.NewDataset(records)
//	engine := core.NewEngine(ds)
//	rows, err := engine.ByLanguage(core.French)
//
// # Dataset
//
// A [Dataset] is validated and copied once at load time and never changes
// afterwards. The supported languages and continents are derived from it
// during [NewDataset], not per query.
//
// # Queries
//
//   - [Engine.ByLanguage]: every record, name resolved for one language.
//   - [Engine.ByPopulation]: English names, min < population < max, or
//     population > min when max is zero.
//   - [Engine.ByAreaAndContinent]: English names, exact continent and
//     area >= minArea.
//
// The population bounds are exclusive while the area bound is inclusive.
//
// # Views
//
// Named queries shown in the menu are registered at init time with
// [Register], see package views.
//
// # Error Handling
//
// An unknown language yields a [*LookupError]. Errors are mapped to
// user-facing messages with [MapError] at the presentation edge; the core
// itself never logs.
package core
