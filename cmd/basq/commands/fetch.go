package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/qbanex/basq/errors"
	"github.com/qbanex/basq/render"
	"github.com/qbanex/basq/store"
)

var (
	fetchFilter  searchFlags
	fetchFormats []string
	fetchDest    string
)

// FetchCmd represents the fetch command
var FetchCmd = &cobra.Command{
	Use:   "fetch [pattern]...",
	Short: "Download basis sets matching a search",
	Long: `Download every basis set matching the search, one file per format.

The filter surface is the same as basq search. Formats are validated before
anything is downloaded, and files that already exist are left untouched.

Examples:
  basq fetch pc-2                        # gaussian94 into the current directory
  basq fetch -i sto-3g -f qchem          # Q-Chem format
  basq fetch cc-pVDZ -f orca -f cfour --dest ./basis`,
	RunE: runFetchCommand,
}

func init() {
	fetchFilter.register(FetchCmd)
	FetchCmd.Flags().StringArrayVarP(&fetchFormats, "format", "f", nil, "Output format (repeatable; default from configuration)")
	FetchCmd.Flags().StringVar(&fetchDest, "dest", "", "Destination directory (default from configuration)")
}

func runFetchCommand(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}

	names := fetchFormats
	if len(names) == 0 {
		names = sess.cfg.Download.Formats
	}
	// resolve every format before any network or file I/O
	tags, err := render.ParseTags(names)
	if err != nil {
		return err
	}

	dest := fetchDest
	if dest == "" {
		dest = sess.cfg.Download.Dir
	}

	matches, _, err := matchCatalogue(cmd.Context(), sess, args, &fetchFilter)
	if err != nil {
		return err
	}

	var failed int
	for _, entry := range matches {
		set, err := sess.reg.Fetch(cmd.Context(), entry)
		if errors.IsEntryNotFound(err) {
			pterm.Warning.Printfln("Skipping %s (%s): %v", entry.Name, entry.Origin, err)
			failed++
			continue
		}
		if err != nil {
			return err
		}

		results, err := store.Write(dest, set, tags)
		if err != nil {
			return err
		}
		for _, res := range results {
			if !res.Skipped {
				pterm.Success.Printfln("Saved %s", res.Path)
			}
		}
	}
	if failed > 0 {
		return errors.Newf("failed to download %d of %d basis sets", failed, len(matches))
	}
	return nil
}
