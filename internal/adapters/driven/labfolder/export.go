package labfolder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/logger"
)

type exportProject struct {
	Entries []exportEntry `json:"entries"`
}

type exportEntry struct {
	ID       json.RawMessage `json:"id"`
	Title    string          `json:"title"`
	Tags     []string        `json:"tags"`
	Elements []exportElement `json:"elements"`
}

type exportElement struct {
	ID            json.RawMessage `json:"id"`
	ElementType   string          `json:"element_type"`
	Title         string          `json:"title"`
	Content       json.RawMessage `json:"content"`
	LabfolderData map[string]any  `json:"labfolder_data"`
}

// ParseExport decodes an export document into entries, in export order.
// Elements whose payload does not match their type are skipped with a warning.
func ParseExport(data []byte) ([]domain.Entry, error) {
	trimmed := bytes.TrimSpace(data)
	var raw []exportEntry
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	} else {
		var project exportProject
		if err := json.Unmarshal(trimmed, &project); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		raw = project.Entries
	}

	entries := make([]domain.Entry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, e.entry())
	}
	return entries, nil
}

func (e exportEntry) entry() domain.Entry {
	entry := domain.Entry{
		ID:    idString(e.ID),
		Title: e.Title,
		Tags:  e.Tags,
	}
	for _, el := range e.Elements {
		re, err := el.element()
		if err != nil {
			logger.Warn("Entry %s: skipping element %s: %v", entry.ID, idString(el.ID), err)
			continue
		}
		entry.Elements = append(entry.Elements, re)
	}
	return entry
}

func (el exportElement) element() (domain.RawElement, error) {
	re := domain.RawElement{
		ID:    idString(el.ID),
		Kind:  domain.ParseElementKind(el.ElementType),
		Title: el.Title,
	}
	switch re.Kind {
	case domain.ElementData:
		re.Data = el.LabfolderData
		if re.Data == nil {
			re.Data = map[string]any{}
		}
	case domain.ElementText:
		if len(el.Content) > 0 {
			if err := json.Unmarshal(el.Content, &re.Text); err != nil {
				return re, fmt.Errorf("text content: %w", err)
			}
		}
	case domain.ElementTable:
		var payload domain.TablePayload
		if len(el.Content) > 0 {
			if err := json.Unmarshal(el.Content, &payload); err != nil {
				return re, fmt.Errorf("table content: %w", err)
			}
		}
		re.Table = &payload
	}
	return re, nil
}

// idString renders a JSON id, number or string, as the string used for lookups.
func idString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return s
}
