package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var classesCmd = &cobra.Command{
	Use:   "classes [mapping-file]",
	Short: "Show how the classes of a mapping file resolve",
	Long: `Classes loads a mapping file and resolves every class entry against the
registered section types. Entries that do not resolve are skipped during an
import.`,
	Args: cobra.ExactArgs(1),
	RunE: runClasses,
}

func init() {
	rootCmd.AddCommand(classesCmd)
}

func runClasses(cmd *cobra.Command, args []string) error {
	if importer == nil {
		return errors.New("import service not configured")
	}

	report, err := importer.Classes(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load mapping file: %w", err)
	}

	st := newStyles(cmd.OutOrStdout())
	if len(report.Classes) == 0 {
		cmd.Println("No classes declared.")
	}
	for _, c := range report.Classes {
		status := st.Success.Render("ok")
		if !c.Resolved {
			status = st.Error.Render("unresolved")
		}
		repeats := "single"
		if c.Spec.Repeats.AttachesList() {
			repeats = "list"
		}
		cmd.Printf("%-20s %-12s %-7s %s [%s]\n", c.Spec.Key, c.Spec.Type, repeats, c.Spec.Class, status)
		if c.Spec.Attribute != "" {
			cmd.Printf("  -> %s\n", c.Spec.Attribute)
		}
		if c.Error != "" {
			cmd.Printf("  %s\n", st.Muted.Render(c.Error))
		}
	}

	for _, w := range report.Diagnostics.Warnings {
		cmd.Println(st.Warning.Render("Warning: " + w.String()))
	}
	return nil
}
