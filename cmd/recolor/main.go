package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/recolor"
	"github.com/jsvensson/recolor/internal/color"
	"github.com/jsvensson/recolor/internal/engine"
	"github.com/jsvensson/recolor/internal/format"
	"github.com/jsvensson/recolor/internal/rewrite"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagScheme    string
	flagMode      string
	flagMetric    string
	flagNoInvert  bool
	flagOut       string
	flagInPlace   bool
	flagExt       []string
	flagCheck     bool
	flagVerbosity int
	version       = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "recolor",
	Short:   "Remap the colors of CSS stylesheets onto a target palette",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbosity, nil)
	},
	SilenceUsage: true,
}

var applyCmd = &cobra.Command{
	Use:   "apply [files or directories...]",
	Short: "Recolor stylesheets",
	Long: "Recolor one or more stylesheets. Results go to stdout unless --out or --in-place is given. " +
		"Directories are walked for files with the given extensions.",
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var planCmd = &cobra.Command{
	Use:   "plan [files or directories...]",
	Short: "Print the rewrite rules for stylesheets without changing them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format scheme files",
	Long:  "Format one or more HCL or YAML scheme files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var palettesCmd = &cobra.Command{
	Use:   "palettes [scheme]",
	Short: "List builtin schemes, or the colors of one scheme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPalettes,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbosity, "verbose", "v", "increase log verbosity (can be repeated)")

	for _, cmd := range []*cobra.Command{applyCmd, planCmd} {
		cmd.Flags().StringVarP(&flagScheme, "scheme", "s", "solarized-dark", "scheme file or builtin scheme name")
		cmd.Flags().StringVar(&flagMode, "mode", string(rewrite.ModeRanges), "rewrite mode: ranges or substring")
		cmd.Flags().StringVar(&flagMetric, "metric", "", "override the scheme's distance metric: cie76, cie94, ciede2000 or oklab")
		cmd.Flags().BoolVar(&flagNoInvert, "no-invert", false, "ignore the scheme's inversion table")
		cmd.Flags().StringArrayVar(&flagExt, "ext", engine.DefaultExtensions, "stylesheet extensions to pick up in directories (can be repeated)")
	}
	applyCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output directory")
	applyCmd.Flags().BoolVarP(&flagInPlace, "in-place", "i", false, "overwrite the input files")
	applyCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "report files that would change (do not write changes)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(palettesCmd)
	rootCmd.AddCommand(versionCmd)
}

func newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	scheme, err := recolor.Load(flagScheme)
	if err != nil {
		return nil, err
	}

	mode, err := rewrite.ParseMode(flagMode)
	if err != nil {
		return nil, err
	}

	var metric color.Metric
	if flagMetric != "" {
		if metric, err = color.ParseMetric(flagMetric); err != nil {
			return nil, err
		}
	}

	return &engine.Engine{
		Scheme: scheme,
		Options: recolor.Options{
			Mode:     mode,
			Metric:   metric,
			NoInvert: flagNoInvert,
		},
		Extensions: flagExt,
		Stdout:     cmd.OutOrStdout(),
	}, nil
}

func runApply(cmd *cobra.Command, args []string) error {
	e, err := newEngine(cmd)
	if err != nil {
		return err
	}
	e.OutputDir = flagOut
	e.InPlace = flagInPlace
	e.DryRun = flagCheck

	results, err := e.Run(args)

	needsRecolor := false
	for _, r := range results {
		if flagCheck && r.Changed {
			fmt.Fprintln(cmd.OutOrStdout(), r.Path)
			needsRecolor = true
		} else if r.Output != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Recolored %s -> %s\n", r.Path, r.Output)
		}
	}

	if err != nil {
		return fmt.Errorf("recoloring: %w", err)
	}
	if needsRecolor {
		os.Exit(1)
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	e, err := newEngine(cmd)
	if err != nil {
		return err
	}
	e.DryRun = true

	results, err := e.Run(args)
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d sites)\n", r.Path, r.Sites)
		for _, rule := range r.Rules {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", rule)
		}
	}
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.File(path, content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func runPalettes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range recolor.Builtins() {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	scheme, err := recolor.Load(args[0])
	if err != nil {
		return err
	}
	if scheme.Meta.Name != "" {
		fmt.Fprintf(out, "# %s\n", scheme.Meta.Name)
	}
	for i, c := range scheme.Target {
		fmt.Fprintf(out, "%-10s %s\n", scheme.Names[i], c)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
