package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

const (
	// templateSeparator joins the segments of a name template.
	templateSeparator = "+"

	// referencePrefix marks a segment as a reference rather than a literal.
	referencePrefix = "LF"

	// dataReference is the reference into the data pool.
	dataReference = "LF.data"
)

// SynthesizeName expands a name template such as "Sample-+LF.data.meta.id".
// Literal segments are copied verbatim. A data reference contributes the
// description of the leaf it names; other references contribute nothing.
// Unresolvable references contribute nothing and are returned joined as
// the error alongside the partial name.
func SynthesizeName(template string, data domain.DataContent) (string, error) {
	var (
		name strings.Builder
		errs []error
	)
	for _, segment := range strings.Split(template, templateSeparator) {
		ref := strings.TrimSpace(segment)
		if !strings.HasPrefix(ref, referencePrefix) {
			name.WriteString(segment)
			continue
		}
		if ref != dataReference && !strings.HasPrefix(ref, dataReference+".") {
			continue
		}

		path := strings.Split(ref, ".")[2:]
		desc, err := data.Description(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("name reference %s: %w", ref, err))
			continue
		}
		name.WriteString(desc)
	}
	return name.String(), errors.Join(errs...)
}
