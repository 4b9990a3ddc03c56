// Package render turns query results into rows for display.
//
// Column order is fixed: flag, code, name, continent, area, population,
// capital. The flag is derived from the code, which is passed through with
// its original casing.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/countries/internal/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat validates a format name. An empty name means FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json or csv)", s)
	}
}

// Columns are the display headers, flag first.
var Columns = []string{"Flag", "Code", "Country", "Continent", "Area (km²)", "Population", "Capital"}

// ExportColumns are the machine-readable headers used for CSV. They match the
// JSON field names of core.ProjectedCountry.
var ExportColumns = []string{"flag", "code", "name", "continent", "areaInKm2", "population", "capital"}

// FlagPath returns the flag image path for a country code: "CA" -> "flags/ca.png".
func FlagPath(code string) string {
	return "flags/" + strings.ToLower(code) + ".png"
}

// FormatNumber groups digits the English way: 36624199 -> "36,624,199".
func FormatNumber(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// Row returns the display cells of c in column order.
func Row(c core.ProjectedCountry) []string {
	return []string{
		FlagPath(c.Code),
		c.Code,
		c.Name,
		c.Continent,
		FormatNumber(c.AreaInKm2),
		FormatNumber(c.Population),
		c.Capital,
	}
}

// exportRow returns the raw cells of c in column order.
func exportRow(c core.ProjectedCountry) []string {
	return []string{
		FlagPath(c.Code),
		c.Code,
		c.Name,
		c.Continent,
		strconv.FormatInt(c.AreaInKm2, 10),
		strconv.FormatInt(c.Population, 10),
		c.Capital,
	}
}

// Write encodes rows to w in the given format.
func Write(w io.Writer, f Format, rows []core.ProjectedCountry) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, rows)
	case FormatCSV:
		return WriteCSV(w, rows)
	default:
		return WriteTable(w, rows)
	}
}

// WriteTable writes an aligned text table with the display headers.
func WriteTable(w io.Writer, rows []core.ProjectedCountry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(Columns, "\t"))
	for _, c := range rows {
		fmt.Fprintln(tw, strings.Join(Row(c), "\t"))
	}
	return tw.Flush()
}

// WriteCSV writes a header line and one record per row with unformatted numbers.
func WriteCSV(w io.Writer, rows []core.ProjectedCountry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for _, c := range rows {
		if err := cw.Write(exportRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes rows as an indented JSON array. A nil slice is written as [].
func WriteJSON(w io.Writer, rows []core.ProjectedCountry) error {
	if rows == nil {
		rows = []core.ProjectedCountry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// LanguageTag maps a dataset language label to a BCP 47 tag.
// Unknown labels map to language.Und.
func LanguageTag(lang core.Language) language.Tag {
	switch lang {
	case core.English:
		return language.English
	case core.Arabic:
		return language.Arabic
	case core.Chinese:
		return language.Chinese
	case core.French:
		return language.French
	case core.Hindi:
		return language.Hindi
	case core.Korean:
		return language.Korean
	case core.Japanese:
		return language.Japanese
	case core.Russian:
		return language.Russian
	default:
		return language.Und
	}
}

// rtlBases are language bases written right to left.
var rtlBases = map[string]bool{"ar": true, "he": true, "fa": true, "ur": true}

// Direction returns "rtl" or "ltr" for lang.
func Direction(lang core.Language) string {
	base, _ := LanguageTag(lang).Base()
	if rtlBases[base.String()] {
		return "rtl"
	}
	return "ltr"
}
