package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
)

var (
	importUpload string
	importJSON   bool
	importWatch  bool
)

var importCmd = &cobra.Command{
	Use:   "import [entry-id] [mapping-file]",
	Short: "Map one entry into archives",
	Long: `Import maps the entry with the given id using a mapping file.

The entry's tags select the root class. Problems with single values are
reported as warnings and do not stop the import. An unsupported mapping file,
an unknown entry or ambiguous tags abort before anything is written.

With --watch the import is repeated whenever the mapping file or the entry
export changes.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importUpload, "upload", "u", "", "upload receiving the archives")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "output the result as JSON")
	importCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "re-run when the mapping file changes")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importer == nil {
		return errors.New("import service not configured")
	}

	req := driving.ImportRequest{
		EntryID:     args[0],
		MappingFile: args[1],
		Upload:      importUpload,
	}

	err := importOnce(cmd, req)
	if !importWatch {
		return err
	}
	if err != nil {
		printImportError(cmd, err)
	}
	return watchImport(cmd, req, append([]string{req.MappingFile}, watchPaths...))
}

func importOnce(cmd *cobra.Command, req driving.ImportRequest) error {
	result, err := importer.Import(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if importJSON {
		return outputImportJSON(cmd, result)
	}
	outputImportReport(cmd, result)
	return nil
}

func printImportError(cmd *cobra.Command, err error) {
	st := newStyles(cmd.ErrOrStderr())
	fmt.Fprintln(cmd.ErrOrStderr(), st.Error.Render("Error: "+err.Error()))
}

type importJSONOutput struct {
	ClassKey string              `json:"class_key"`
	Root     domain.Reference    `json:"root"`
	Name     string              `json:"name"`
	Archives []domain.Reference  `json:"archives"`
	Warnings []domain.Diagnostic `json:"warnings"`
	Infos    []domain.Diagnostic `json:"infos"`
	Data     *domain.Section     `json:"data"`
}

func outputImportJSON(cmd *cobra.Command, result *driving.ImportResult) error {
	out := importJSONOutput{
		ClassKey: result.ClassKey,
		Root:     result.RootRef,
		Archives: result.Archives,
		Warnings: result.Diagnostics.Warnings,
		Infos:    result.Diagnostics.Infos,
		Data:     result.Root,
	}
	if result.Root != nil {
		out.Name = result.Root.Name
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputImportReport(cmd *cobra.Command, result *driving.ImportResult) {
	st := newStyles(cmd.OutOrStdout())

	name := ""
	if result.Root != nil {
		name = result.Root.Name
	}
	cmd.Println(st.Title.Render(fmt.Sprintf("Imported %s as %q", result.ClassKey, name)))
	cmd.Printf("  Root: %s\n", result.RootRef)
	if len(result.Archives) > 0 {
		cmd.Printf("  Archives (%d):\n", len(result.Archives))
		for _, ref := range result.Archives {
			cmd.Printf("    %s\n", st.Muted.Render(ref.String()))
		}
	}

	warnings := result.Diagnostics.Warnings
	if len(warnings) == 0 {
		cmd.Println(st.Success.Render("No warnings."))
		return
	}
	cmd.Println(st.Warning.Render(fmt.Sprintf("Warnings (%d):", len(warnings))))
	for _, w := range warnings {
		cmd.Printf("  - %s\n", w)
	}
}
