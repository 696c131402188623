package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/services"
	"financas/internal/sheets"
)

// SummaryRefresher recomputes one user's summary for one month.
type SummaryRefresher interface {
	Recompute(ctx context.Context, userID string, month core.Month, opts *services.RecomputeOptions) (core.MonthlyFinanceSummary, error)
}

// UserLister names the users whose summaries the periodic catch-up should
// refresh.
type UserLister interface {
	ActiveUsers(ctx context.Context) ([]string, error)
}

// RecomputeWorker consumes recompute messages and refreshes monthly
// summaries. The periodic catch-up re-runs the current month for every
// active user so lost messages only delay a refresh, never skip it.
type RecomputeWorker struct {
	summaries SummaryRefresher
	users     UserLister
	exporter  sheets.SummaryExporter
	now       func() time.Time
}

func NewRecomputeWorker(summaries SummaryRefresher, users UserLister, exporter sheets.SummaryExporter) *RecomputeWorker {
	return &RecomputeWorker{
		summaries: summaries,
		users:     users,
		exporter:  exporter,
		now:       time.Now,
	}
}

// HandleMessage processes one recompute message from AMQP. The refresh is
// mandatory; the sheet export is best effort.
func (w *RecomputeWorker) HandleMessage(ctx context.Context, msg *amqp.RecomputeMessage) error {
	month, err := msg.ParseMonth()
	if err != nil {
		return fmt.Errorf("parse message month: %w", err)
	}

	summary, err := w.summaries.Recompute(ctx, msg.UserID, month, nil)
	if err != nil {
		return fmt.Errorf("recompute summary: %w", err)
	}

	w.export(ctx, summary)
	return nil
}

// RefreshCurrentMonth recomputes the running month for every active user.
func (w *RecomputeWorker) RefreshCurrentMonth(ctx context.Context) error {
	users, err := w.users.ActiveUsers(ctx)
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	month := core.MonthOf(w.now())
	slog.InfoContext(ctx, "Refreshing current month summaries",
		"month", month.String(), "users", len(users))

	var failed int
	for _, userID := range users {
		summary, err := w.summaries.Recompute(ctx, userID, month, nil)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to refresh summary",
				"user_id", userID, "month", month.String(), "error", err)
			failed++
			continue
		}
		w.export(ctx, summary)
	}
	if failed > 0 {
		return fmt.Errorf("refresh current month: %d of %d users failed", failed, len(users))
	}
	return nil
}

// RunPeriodic runs the catch-up refresh on the given interval until ctx is
// done. One run happens immediately at startup to recover from downtime.
func (w *RecomputeWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	if err := w.RefreshCurrentMonth(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup refresh failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.RefreshCurrentMonth(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic refresh failed", "error", err)
			}
		}
	}
}

func (w *RecomputeWorker) export(ctx context.Context, summary core.MonthlyFinanceSummary) {
	if w.exporter == nil {
		return
	}
	ref, err := w.exporter.ExportSummary(ctx, summary)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to export summary",
			"user_id", summary.UserID, "month", summary.Month().String(), "error", err)
		return
	}
	slog.InfoContext(ctx, "Summary exported", "user_id", summary.UserID, "row", ref)
}
