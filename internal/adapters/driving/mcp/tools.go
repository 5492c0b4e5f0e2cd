package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
)

// ImportInput is the input schema for the import_entry tool.
type ImportInput struct {
	EntryID     string `json:"entry_id" jsonschema:"import identifier of the source entry"`
	MappingFile string `json:"mapping_file" jsonschema:"path to a .json or .yaml mapping specification"`
	Upload      string `json:"upload,omitempty" jsonschema:"upload receiving the archives (default from config)"`
}

// ImportOutput is the output schema for the import_entry tool.
type ImportOutput struct {
	ClassKey string             `json:"class_key"`
	Root     string             `json:"root"`
	Name     string             `json:"name"`
	Archives []string           `json:"archives"`
	Warnings []DiagnosticOutput `json:"warnings,omitempty"`
	Infos    []DiagnosticOutput `json:"infos,omitempty"`
}

// DiagnosticOutput is one non-fatal finding.
type DiagnosticOutput struct {
	Code    string `json:"code"`
	Class   string `json:"class,omitempty"`
	KeyPath string `json:"key_path,omitempty"`
	Message string `json:"message"`
}

// ClassesInput is the input schema for the list_classes tool.
type ClassesInput struct {
	MappingFile string `json:"mapping_file" jsonschema:"path to a .json or .yaml mapping specification"`
}

// ClassesOutput is the output schema for the list_classes tool.
type ClassesOutput struct {
	Classes  []ClassOutput      `json:"classes"`
	Warnings []DiagnosticOutput `json:"warnings,omitempty"`
}

// ClassOutput describes one class entry and whether its type resolved.
type ClassOutput struct {
	Key       string `json:"key"`
	Class     string `json:"class"`
	Type      string `json:"type"`
	Attribute string `json:"attribute,omitempty"`
	Repeats   bool   `json:"repeats"`
	Resolved  bool   `json:"resolved"`
	Error     string `json:"error,omitempty"`
}

// ArchivesInput is the input schema for the list_archives tool.
type ArchivesInput struct {
	Upload string `json:"upload,omitempty" jsonschema:"restrict to one upload (default all)"`
}

// ArchivesOutput is the output schema for the list_archives tool.
type ArchivesOutput struct {
	Archives []ArchiveOutput `json:"archives"`
	Count    int             `json:"count"`
}

// ArchiveOutput summarises one persisted archive.
type ArchiveOutput struct {
	ID          string `json:"id"`
	Upload      string `json:"upload"`
	Name        string `json:"name"`
	FileName    string `json:"file_name"`
	SectionType string `json:"section_type"`
	URI         string `json:"uri"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_entry",
		Description: "Map one electronic lab notebook entry into archives using a mapping specification",
	}, s.handleImport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_classes",
		Description: "Load a mapping specification and report whether each class entry resolves",
	}, s.handleClasses)

	if s.ports.Archive != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_archives",
			Description: "List persisted archives",
		}, s.handleArchives)
	}
}

func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	if input.EntryID == "" || input.MappingFile == "" {
		return nil, ImportOutput{}, errors.New("entry_id and mapping_file are required")
	}

	result, err := s.ports.Importer.Import(ctx, driving.ImportRequest{
		EntryID:     input.EntryID,
		MappingFile: input.MappingFile,
		Upload:      input.Upload,
	})
	if err != nil {
		return nil, ImportOutput{}, err
	}

	output := ImportOutput{
		ClassKey: result.ClassKey,
		Root:     result.RootRef.String(),
		Archives: make([]string, len(result.Archives)),
		Warnings: diagnosticsOutput(result.Diagnostics.Warnings),
		Infos:    diagnosticsOutput(result.Diagnostics.Infos),
	}
	if result.Root != nil {
		output.Name = result.Root.Name
	}
	for i, ref := range result.Archives {
		output.Archives[i] = ref.String()
	}
	return nil, output, nil
}

func (s *Server) handleClasses(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassesInput,
) (*mcp.CallToolResult, ClassesOutput, error) {
	if input.MappingFile == "" {
		return nil, ClassesOutput{}, errors.New("mapping_file is required")
	}

	report, err := s.ports.Importer.Classes(ctx, input.MappingFile)
	if err != nil {
		return nil, ClassesOutput{}, err
	}

	output := ClassesOutput{
		Classes:  make([]ClassOutput, len(report.Classes)),
		Warnings: diagnosticsOutput(report.Diagnostics.Warnings),
	}
	for i, c := range report.Classes {
		output.Classes[i] = ClassOutput{
			Key:       c.Spec.Key,
			Class:     c.Spec.Class,
			Type:      string(c.Spec.Type),
			Attribute: c.Spec.Attribute,
			Repeats:   c.Spec.Repeats.AttachesList(),
			Resolved:  c.Resolved,
			Error:     c.Error,
		}
	}
	return nil, output, nil
}

func (s *Server) handleArchives(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ArchivesInput,
) (*mcp.CallToolResult, ArchivesOutput, error) {
	archives, err := s.ports.Archive.List(ctx, input.Upload)
	if err != nil {
		return nil, ArchivesOutput{}, err
	}

	output := ArchivesOutput{
		Archives: make([]ArchiveOutput, len(archives)),
		Count:    len(archives),
	}
	for i := range archives {
		output.Archives[i] = ArchiveOutput{
			ID:          archives[i].ID,
			Upload:      archives[i].Upload,
			Name:        archives[i].Name,
			FileName:    archives[i].FileName,
			SectionType: archives[i].SectionType,
			URI:         uriScheme + "archives/" + archives[i].ID,
		}
	}
	return nil, output, nil
}

func diagnosticsOutput(diags []domain.Diagnostic) []DiagnosticOutput {
	if len(diags) == 0 {
		return nil
	}
	out := make([]DiagnosticOutput, len(diags))
	for i, d := range diags {
		out[i] = DiagnosticOutput{
			Code:    d.Code,
			Class:   d.Class,
			KeyPath: d.KeyPath,
			Message: d.Message,
		}
	}
	return out
}
