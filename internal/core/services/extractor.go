package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// paragraphClose splits a TEXT element into header and body.
const paragraphClose = "</p>"

// textBodySeparator joins the body paragraphs of a TEXT element.
const textBodySeparator = ";"

var markupTag = regexp.MustCompile(`<[^>]+>`)

// ExtractRecords groups the elements of one entry into content pools.
// DATA payloads are merged top-level, later elements winning. TEXT elements
// become header/body pairs. Each sheet of a TABLE element becomes one
// TableRecord named after the element title.
func ExtractRecords(elements []domain.RawElement) *domain.Pools {
	pools := &domain.Pools{
		Data: make(domain.DataContent),
		Text: make(domain.TextContent),
	}

	for i := range elements {
		el := &elements[i]
		switch el.Kind {
		case domain.ElementData:
			for k, v := range el.Data {
				pools.Data[k] = v
			}
		case domain.ElementText:
			header, body := splitText(el.Text)
			pools.Text[header] = body
		case domain.ElementTable:
			if el.Table == nil {
				continue
			}
			pools.Tables = append(pools.Tables, tableRecords(el.Title, el.Table)...)
		}
	}

	return pools
}

// splitText splits HTML content at the first paragraph close and removes
// all markup from both halves.
func splitText(content string) (header, body string) {
	parts := strings.Split(content, paragraphClose)
	header = stripMarkup(parts[0])
	body = stripMarkup(strings.Join(parts[1:], textBodySeparator))
	return header, body
}

func stripMarkup(s string) string {
	return markupTag.ReplaceAllString(s, "")
}

func tableRecords(title string, payload *domain.TablePayload) []domain.TableRecord {
	records := make([]domain.TableRecord, 0, len(payload.Sheets))
	for _, sheetKey := range sortedIndexKeys(payload.Sheets) {
		records = append(records, sheetRecord(title, payload.Sheets[sheetKey]))
	}
	return records
}

// sheetRecord rebuilds the positional grid of a sheet, promotes its first
// row to column names and re-indexes the remaining rows from 0.
func sheetRecord(title string, sheet domain.Sheet) domain.TableRecord {
	rec := domain.TableRecord{Name: title}
	grid := sheet.Data.DataTable
	rowKeys := sortedIndexKeys(grid)
	if len(rowKeys) == 0 {
		return rec
	}

	colSet := make(map[string]struct{})
	for _, rk := range rowKeys {
		for ck := range grid[rk] {
			colSet[ck] = struct{}{}
		}
	}
	colKeys := sortedIndexKeys(colSet)

	headers := make(map[string]string, len(colKeys))
	for _, ck := range colKeys {
		cell, ok := grid[rowKeys[0]][ck]
		if !ok || cell.Value == nil {
			continue
		}
		name := cellString(cell.Value)
		if name == "" {
			continue
		}
		headers[ck] = name
		rec.Columns = append(rec.Columns, name)
	}

	for _, rk := range rowKeys[1:] {
		row := make(map[string]any, len(headers))
		for ck, name := range headers {
			if cell, ok := grid[rk][ck]; ok {
				row[name] = cell.Value
			}
		}
		rec.Rows = append(rec.Rows, row)
	}
	return rec
}

func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// sortedIndexKeys orders decimal index keys numerically; keys that are not
// numbers sort after them, lexicographically.
func sortedIndexKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
