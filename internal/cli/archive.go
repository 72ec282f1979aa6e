package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorsort/internal/compression"
)

// archiveCmd groups commands that work on run archives written by sort --archive.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect and unpack run archives",
}

var archiveListCmd = &cobra.Command{
	Use:   "list <archive.tar.xz>",
	Short: "List the files in a run archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := compression.ListTarXz(args[0])
		if err != nil {
			return err
		}
		table := NewTable([]string{"File", "Size"})
		for _, e := range entries {
			table.AddRow([]string{e.Name, strconv.FormatInt(e.Size, 10)})
		}
		fmt.Fprint(cmd.OutOrStdout(), table.Render())
		return nil
	},
}

var archiveExtractCmd = &cobra.Command{
	Use:   "extract <archive.tar.xz> <directory>",
	Short: "Unpack a run archive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := compression.ExtractTarXz(args[0], args[1])
		if err != nil {
			return err
		}
		logger.Info("extracted archive", "files", len(written), "dir", args[1])
		return nil
	},
}

func init() {
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveExtractCmd)
}
