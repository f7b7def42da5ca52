package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/qbanex/basq/cmd/basq/commands"
	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/logger"
)

var rootCmd = &cobra.Command{
	Use:   "basq",
	Short: "basq - search and download Gaussian basis sets",
	Long: `basq - search and download Gaussian basis sets.

basq keeps a local catalogue of the basis sets published by the Basis Set
Exchange and ccRepo, lets you filter it by name, description and elements,
and writes sets in the input formats quantum chemistry programs expect.

Available commands:
  search   - Search the basis set catalogue
  fetch    - Download basis sets matching a search
  update   - Rebuild the catalogue cache
  formats  - List supported output formats
  version  - Show version information

Examples:
  basq search cc-pv                  # every correlation consistent set
  basq search -i sto -E C,H          # case-insensitive, must cover C and H
  basq fetch pc-2 -f nwchem -f orca  # download in two formats
  basq update                        # force a catalogue rebuild`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(verbosity, false); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			pterm.DisableColor()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Path to a basq.toml configuration file")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")

	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.FetchCmd)
	rootCmd.AddCommand(commands.UpdateCmd)
	rootCmd.AddCommand(commands.FormatsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError maps the error taxonomy to user-facing messages.
func printError(err error) {
	switch {
	case errors.IsNoMatches(err):
		pterm.Println("No matching basis sets found.")
	case errors.IsSourceUnavailable(err):
		pterm.Error.Printfln("Catalogue source unreachable: %v", err)
	case errors.IsUnsupportedFormat(err):
		pterm.Error.Printfln("%v", err)
		pterm.Info.Println("Run 'basq formats' to see the supported output formats.")
	default:
		pterm.Error.Printfln("%v", err)
	}
	for _, hint := range errors.GetAllHints(err) {
		pterm.Info.Println(hint)
	}
}
