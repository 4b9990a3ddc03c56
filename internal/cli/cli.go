// Package cli implements the countries command line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/countries/internal/config"
	"github.com/JonMunkholm/countries/internal/core"
	"github.com/JonMunkholm/countries/internal/dataset"
	"github.com/JonMunkholm/countries/internal/logging"
	"github.com/JonMunkholm/countries/internal/render"
	"github.com/spf13/cobra"
)

// Options wires the command to its environment. Zero values mean the
// process environment, stdout and stderr.
type Options struct {
	Lookup config.LookupFunc
	Out    io.Writer
	Err    io.Writer
}

type app struct {
	opts     Options
	dataPath string
	format   string

	engine *core.Engine
	output render.Format
}

// NewRootCommand builds the countries command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:               "countries",
		Short:             "Query the list of countries and dependencies",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "dataset JSON file (default: DATASET_PATH, DATABASE_URL or the embedded dataset)")
	root.PersistentFlags().StringVar(&a.format, "format", string(render.FormatTable), "output format: table, json or csv")

	root.AddCommand(
		a.languageCmd(),
		a.populationCmd(),
		a.areaCmd(),
		a.continentsCmd(),
		a.viewsCmd(),
		a.viewCmd(),
	)
	return root
}

// setup loads configuration and the dataset before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	f, err := render.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.output = f

	cfg, err := config.LoadFrom(a.opts.Lookup)
	if err != nil {
		return err
	}
	slog.SetDefault(logging.New(a.opts.Err, cfg.Logging.Level, cfg.Logging.Format))

	if a.dataPath != "" {
		cfg.Dataset.Path = a.dataPath
		cfg.Dataset.DatabaseURL = ""
	}

	ds, source, err := dataset.Load(cmd.Context(), cfg.Dataset)
	if err != nil {
		return fmt.Errorf("%s: %w", core.FormatUserError(err), err)
	}
	slog.Debug("dataset loaded", "id", ds.ID(), "source", source, "records", ds.Len())

	a.engine = core.NewEngine(ds)
	return nil
}

func (a *app) write(rows []core.ProjectedCountry) error {
	return render.Write(a.opts.Out, a.output, rows)
}

func (a *app) languageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "language [name]",
		Short: "List every country with its name in one language (default English)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang := core.DefaultLanguage
			if len(args) == 1 {
				lang = core.Language(args[0])
			}
			rows, err := a.engine.ByLanguage(lang)
			if err != nil {
				return err
			}
			return a.write(rows)
		},
	}
}

func (a *app) populationCmd() *cobra.Command {
	var minPop, maxPop int64
	cmd := &cobra.Command{
		Use:   "population --min N [--max N]",
		Short: "List countries with min < population < max",
		Long: "List countries whose population is strictly greater than --min and,\n" +
			"when --max is non-zero, strictly less than --max.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.engine.ByPopulation(minPop, maxPop)
			if err != nil {
				return err
			}
			return a.write(rows)
		},
	}
	cmd.Flags().Int64Var(&minPop, "min", 0, "exclusive lower bound")
	cmd.Flags().Int64Var(&maxPop, "max", 0, "exclusive upper bound, 0 for none")
	_ = cmd.MarkFlagRequired("min")
	return cmd
}

func (a *app) areaCmd() *cobra.Command {
	var continent string
	var minArea int64
	cmd := &cobra.Command{
		Use:   "area --continent NAME [--min KM2]",
		Short: "List countries on a continent with an area of at least --min km²",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.engine.ByAreaAndContinent(continent, minArea)
			if err != nil {
				return err
			}
			if known := a.engine.Dataset().Continents(); !slices.Contains(known, continent) {
				fmt.Fprintf(a.opts.Err, "no country is on continent %q; known continents: %s\n",
					continent, strings.Join(known, ", "))
			}
			return a.write(rows)
		},
	}
	cmd.Flags().StringVar(&continent, "continent", "", "continent name (see \"countries continents\"), e.g. Americas")
	cmd.Flags().Int64Var(&minArea, "min", 0, "inclusive lower bound in km²")
	_ = cmd.MarkFlagRequired("continent")
	return cmd
}

func (a *app) continentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "continents",
		Short: "List the continents accepted by area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range a.engine.Dataset().Continents() {
				fmt.Fprintln(a.opts.Out, c)
			}
			return nil
		},
	}
}

func (a *app) viewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the named views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.opts.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tGROUP\tTITLE")
			for _, def := range core.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Info.Key, def.Info.Group, def.Info.Title())
			}
			return tw.Flush()
		},
	}
}

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <key>",
		Short: "Run a named view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, rows, err := core.RunView(a.engine, args[0])
			if err != nil {
				return err
			}
			if a.output == render.FormatTable {
				fmt.Fprintln(a.opts.Out, def.Info.Title())
				fmt.Fprintln(a.opts.Out, strings.Repeat("=", len([]rune(def.Info.Title()))))
			}
			return a.write(rows)
		},
	}
}
