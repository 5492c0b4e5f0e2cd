package services

import (
	"fmt"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/logger"
)

// reporter logs non-fatal findings and records them in the run's diagnostics.
type reporter struct {
	diags *domain.Diagnostics
}

func newReporter(diags *domain.Diagnostics) reporter {
	return reporter{diags: diags}
}

func (r reporter) warn(code, class, keyPath, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Warn("%s", msg)
	r.diags.AddWarning(code, msg, class, keyPath)
}

func (r reporter) info(code, class, keyPath, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Info("%s", msg)
	r.diags.AddInfo(code, msg, class, keyPath)
}
