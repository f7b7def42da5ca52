package commands

import (
	"github.com/spf13/cobra"

	"github.com/qbanex/basq/display"
)

var (
	searchFilter       searchFlags
	searchShowElements bool
)

// SearchCmd represents the search command
var SearchCmd = &cobra.Command{
	Use:   "search [pattern]...",
	Short: "Search the basis set catalogue",
	Long: `Search the basis set catalogue.

Bare arguments match against both name and description; -e and -d restrict a
pattern to one of the two. Patterns are regular expressions anchored at the
start of the field. All conditions must hold at once.

Examples:
  basq search                       # list the whole catalogue
  basq search cc-pv                 # names or descriptions starting cc-pv
  basq search -i -e "aug-" -E H,He  # augmented sets covering H and He
  basq search --show-elements sto   # include each set's element list`,
	RunE: runSearchCommand,
}

func init() {
	searchFilter.register(SearchCmd)
	SearchCmd.Flags().BoolVar(&searchShowElements, "show-elements", false, "List the elements of every match")
	SearchCmd.Flags().Bool("json", false, "Output matching entries as JSON")
}

func runSearchCommand(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}

	matches, required, err := matchCatalogue(cmd.Context(), sess, args, &searchFilter)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(matches)
	}

	display.PrintListing(matches, display.ListOptions{
		ShowElements: searchShowElements || len(required) > 0,
		Highlight:    required,
	})
	return nil
}
