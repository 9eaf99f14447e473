package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/brew-math/internal/brew"
	"github.com/ensigniasec/brew-math/internal/config"
	"github.com/ensigniasec/brew-math/internal/storage"
	"github.com/ensigniasec/brew-math/internal/theme"
	"github.com/ensigniasec/brew-math/internal/tui"
	"github.com/ensigniasec/brew-math/internal/validate"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile  = config.DefaultPath
	storageFile string
	backend     string
	verbose     bool
	jsonOutput  bool

	// appConfig is loaded once before any command runs.
	appConfig config.Config

	rootCmd = &cobra.Command{
		Use:   "brew-math",
		Short: "A simple tool to help you brew coffee.",
		Long: `Brew Math converts between coffee strength (grams of coffee per litre of water) and coffee:water ratio, ` +
			`between grams and ounces of water, and works out how much coffee a brew needs. ` +
			`Run without a command for the interactive calculator. Your last inputs are remembered between sessions.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadConfig()
		},
		Run: func(cmd *cobra.Command, args []string) {
			calc, st := openCalculator()
			defer st.Close()
			if err := tui.Run(cmd.Context(), calc, st); err != nil {
				logrus.Fatalf("TUI mode failed: %v", err)
			}
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().
		StringVar(&storageFile, "storage-file", "", "Optional: where preferences are stored [default depends on backend]")
	rootCmd.PersistentFlags().
		StringVar(&backend, "backend", "", "Optional: preference store backend, json or bolt [default json]")

	showCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the recipe in JSON format instead of rich text")
	resetCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the recipe in JSON format instead of rich text")

	rootCmd.AddCommand(showCmd)
	for _, f := range brew.Fields {
		rootCmd.AddCommand(newSetCmd(f))
	}
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(themeCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// loadConfig reads the config file and applies its log level, with --verbose taking precedence.
func loadConfig() {
	cfg, err := config.Load(configFile)
	if err != nil {
		logrus.Fatal(err)
	}
	appConfig = cfg
	logrus.SetLevel(cfg.Level(logrus.InfoLevel))
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// openStore opens the preference store chosen by flags and config.
func openStore() storage.Store { //nolint:ireturn // Backend is chosen at runtime.
	opts := storage.Options{Backend: appConfig.Storage.Backend, Path: appConfig.Storage.Path}
	// Flags override the config file.
	if backend != "" {
		opts.Backend = backend
	}
	if storageFile != "" {
		opts.Path = storageFile
	}

	st, err := storage.Open(opts)
	if err != nil {
		logrus.Fatalf("Unable to open or create storage: %v", err)
	}
	return st
}

// openCalculator opens the preference store and loads the calculator from it.
func openCalculator() (*brew.Calculator, storage.Store) {
	st := openStore()
	calc, err := brew.NewCalculator(st)
	if err != nil {
		st.Close()
		logrus.Fatalf("Unable to load preferences: %v", err)
	}
	return calc, st
}

func printRecipe(calc *brew.Calculator) {
	if err := brew.PrintRecipe(os.Stdout, calc.View(), jsonOutput); err != nil {
		logrus.Fatal(err)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current recipe, conversions and water splits",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		calc, st := openCalculator()
		defer st.Close()
		printRecipe(calc)
	},
}

// newSetCmd builds the command that writes one input field, e.g. `brew-math ratio 16`.
func newSetCmd(f brew.Field) *cobra.Command {
	short := map[brew.Field]string{
		brew.FieldStrength: "Set the strength in grams of coffee per litre of water",
		brew.FieldRatio:    "Set the strength as a 1:N coffee to water ratio",
		brew.FieldWater:    "Set the water in grams",
		brew.FieldOunces:   "Set the water in ounces",
	}[f]

	long := fmt.Sprintf("%s. Values outside %s %s are clamped. "+
		"Put negative values after a -- separator so they are not read as flags.", short, f.Range(), f.Unit())

	c := &cobra.Command{
		Use:     f.String() + " VALUE",
		Short:   short,
		Long:    long,
		Example: fmt.Sprintf("  brew-math %s %g\n  brew-math %s --json -- -5", f, f.Presets()[0], f),
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				logrus.Fatalf("Invalid %s: %q is not a number.", f, args[0])
			}
			// ParseFloat accepts "NaN" and "Inf"; reject them before any clamping is reported.
			if validate.Var(v, "finite") != nil {
				logrus.Fatalf("Invalid %s: %v.", f, brew.ErrNotFinite)
			}
			calc, st := openCalculator()
			defer st.Close()

			if r := f.Range(); !r.Contains(v) {
				logrus.Warnf("%s %g is outside %s %s; clamped to %g.", f, v, r, f.Unit(), r.Clamp(v))
			}
			if err := calc.Set(f, v); err != nil {
				logrus.Fatal(err) //nolint:gocritic // Fatal exits before the deferred Close; nothing was written.
			}
			printRecipe(calc)
		},
	}
	c.Flags().BoolVar(&jsonOutput, "json", false, "Output the recipe in JSON format instead of rich text")
	return c
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var resetCmd = &cobra.Command{
	Use:       "reset [strength|water]",
	Short:     "Reset strength, water, or both to their defaults",
	Long:      "Reset strength to 60 g/L and/or water to 250 g. Without an argument both are reset.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{brew.KeyStrength, brew.KeyWater},
	Run: func(cmd *cobra.Command, args []string) {
		calc, st := openCalculator()
		defer st.Close()

		var err error
		switch {
		case len(args) == 0:
			if err = calc.ResetStrength(); err == nil {
				err = calc.ResetWater()
			}
		case args[0] == brew.KeyStrength:
			err = calc.ResetStrength()
		default:
			err = calc.ResetWater()
		}
		if err != nil {
			logrus.Fatal(err) //nolint:gocritic // Fatal exits before the deferred Close.
		}
		printRecipe(calc)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|high-contrast]",
	Short:     "Show or set the colour theme of the interactive calculator",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark), string(theme.HighContrast)},
	Run: func(cmd *cobra.Command, args []string) {
		st := openStore()
		defer st.Close()

		if len(args) == 0 {
			fmt.Fprintln(os.Stdout, theme.Load(st))
			return
		}
		t, err := theme.Parse(args[0])
		if err != nil {
			logrus.Fatal(err) //nolint:gocritic // Fatal exits before the deferred Close.
		}
		if err := theme.Save(st, t); err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(os.Stdout, "Theme set to %s\n", t)
	},
}

func main() {
	Execute()
}
