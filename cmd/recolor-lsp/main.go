package main

import (
	"os"

	"github.com/jsvensson/recolor/internal/lsp"
	"github.com/spf13/cobra"
)

var (
	flagScheme string
	version    = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "recolor-lsp",
	Short:   "Language server showing stylesheet colors against a palette",
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := lsp.NewServer(version, flagScheme)
		if err != nil {
			return err
		}
		return s.Run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagScheme, "scheme", "s", "solarized-dark", "scheme file or builtin scheme name")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
