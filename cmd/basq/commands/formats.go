package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qbanex/basq/display"
	"github.com/qbanex/basq/render"
)

// FormatsCmd represents the formats command
var FormatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported output formats",
	Long:  `List the output formats basq can write, with the file extension each one uses.`,
	RunE:  runFormatsCommand,
}

func init() {
	FormatsCmd.Flags().Bool("json", false, "Output the format list as JSON")
}

func runFormatsCommand(cmd *cobra.Command, args []string) error {
	type formatInfo struct {
		Tag       string `json:"tag"`
		Extension string `json:"extension"`
	}

	tags := render.Tags()
	rows := make([]formatInfo, 0, len(tags))
	for _, tag := range tags {
		ext, err := render.Extension(tag)
		if err != nil {
			return err
		}
		rows = append(rows, formatInfo{Tag: string(tag), Extension: ext})
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(rows)
	}
	for _, row := range rows {
		fmt.Printf("%-12s .%s\n", row.Tag, row.Extension)
	}
	return nil
}
