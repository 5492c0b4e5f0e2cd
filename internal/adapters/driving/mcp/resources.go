package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for elnmap resources.
	uriScheme = "elnmap://"
)

// registerResources registers the resource handlers for the optional ports.
func (s *Server) registerResources() {
	if s.ports.Archive != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "archives/{archiveId}",
			Name:        "archive",
			Description: "Serialised data section of a persisted archive",
			MIMEType:    "application/json",
		}, s.handleArchiveResource)
	}

	if s.ports.Schema != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "types",
			Name:        "types",
			Description: "Registered section types and their attributes",
			MIMEType:    "application/json",
		}, s.handleTypesResource)
	}
}

func (s *Server) handleArchiveResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractArchiveID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	archive, err := s.ports.Archive.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting archive: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(archive.Data),
		}},
	}, nil
}

func (s *Server) handleTypesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type attrInfo struct {
		Name    string `json:"name"`
		Kind    string `json:"kind"`
		Unit    string `json:"unit,omitempty"`
		Repeats bool   `json:"repeats,omitempty"`
	}
	type typeInfo struct {
		Name        string     `json:"name"`
		Description string     `json:"description,omitempty"`
		Attributes  []attrInfo `json:"attributes"`
	}

	types := s.ports.Schema.Types()
	infos := make([]typeInfo, len(types))
	for i, t := range types {
		attrs := make([]attrInfo, len(t.Attributes))
		for j, a := range t.Attributes {
			attrs[j] = attrInfo{Name: a.Name, Kind: string(a.Kind), Unit: a.Unit, Repeats: a.Repeats}
		}
		infos[i] = typeInfo{Name: t.QualifiedName(), Description: t.Description, Attributes: attrs}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling types: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractArchiveID extracts the archive ID from a URI like elnmap://archives/{archiveId}.
func extractArchiveID(uri string) string {
	const prefix = uriScheme + "archives/"

	id, ok := strings.CutPrefix(uri, prefix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
