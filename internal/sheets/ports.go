package sheets

import (
	"context"

	"financas/internal/core"
)

// SummaryExporter mirrors a recomputed monthly summary to an external
// sheet. Implementations return a reference to the written row.
type SummaryExporter interface {
	ExportSummary(ctx context.Context, s core.MonthlyFinanceSummary) (rowRef string, err error)
}
