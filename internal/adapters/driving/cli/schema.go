package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect registered section types",
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered section types",
	RunE:  runSchemaList,
}

var schemaShowCmd = &cobra.Command{
	Use:   "show [qualified-name]",
	Short: "Show the attributes of a section type",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchemaShow,
}

func init() {
	schemaCmd.AddCommand(schemaListCmd)
	schemaCmd.AddCommand(schemaShowCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaList(cmd *cobra.Command, _ []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	types := schemaService.Types()
	if len(types) == 0 {
		cmd.Println("No section types registered.")
		return nil
	}
	for _, t := range types {
		cmd.Printf("%s (%d attributes)\n", t.QualifiedName(), len(t.Attributes))
	}
	return nil
}

func runSchemaShow(cmd *cobra.Command, args []string) error {
	if schemaService == nil {
		return errors.New("schema service not configured")
	}

	t, err := schemaService.Describe(args[0])
	if err != nil {
		return fmt.Errorf("failed to describe type: %w", err)
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.Title.Render(t.QualifiedName()))
	if t.Description != "" {
		cmd.Println(st.Muted.Render(t.Description))
	}
	cmd.Println()
	for _, a := range t.Attributes {
		cmd.Printf("  %-24s %s\n", a.Name, attributeKind(a))
	}
	return nil
}

func attributeKind(a domain.AttributeDef) string {
	kind := string(a.Kind)
	switch {
	case a.Kind == domain.AttrQuantity && a.Unit != "":
		kind += " [" + a.Unit + "]"
	case a.Section != "":
		kind += " " + a.Section
	}
	if a.Repeats {
		kind += " (list)"
	}
	return kind
}
