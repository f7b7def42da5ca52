package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// UpdateCmd represents the update command
var UpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild the basis set catalogue",
	Long: `Rebuild the basis set catalogue from all enabled sources, regardless of
how fresh the cached copy is. Search and fetch refresh the catalogue on
their own once it is older than cache.max_age_days.`,
	RunE: runUpdateCommand,
}

func runUpdateCommand(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}

	pterm.Info.Println("Updating the catalogue, this may take a while...")
	entries, err := sess.cache.Get(cmd.Context(), true)
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Catalogue rebuilt: %d basis sets", len(entries))
	return nil
}
