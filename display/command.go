package display

import (
	"github.com/spf13/cobra"
)

// ShouldOutputJSON determines if a command should output JSON based on its
// own --json flag or a global one on the root command.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	if root := cmd.Root(); root != cmd {
		if globalFlag, err := root.PersistentFlags().GetBool("json"); err == nil {
			return globalFlag
		}
	}
	return false
}
