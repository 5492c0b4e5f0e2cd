package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var extractJSON bool

var extractCmd = &cobra.Command{
	Use:   "extract [entry-id]",
	Short: "Dump the data, text and table pools of an entry",
	Long: `Extract shows the content pools an entry is mapped from: the merged data
element values, the text elements keyed by header and every table sheet with
its header row promoted to column names.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output the pools as JSON")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if importer == nil {
		return errors.New("import service not configured")
	}

	pools, err := importer.Extract(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if extractJSON {
		data, err := json.MarshalIndent(pools, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal pools: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Fdump(cmd.OutOrStdout(), pools)
	return nil
}
