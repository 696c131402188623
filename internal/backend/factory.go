package backend

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/config"
	gsheet "financas/internal/sheets/google"
	"financas/internal/sheets/memory"
)

// NewSummaryExporter creates the summary exporter the worker publishes
// recomputed summaries to. A configured spreadsheet selects the Google
// Sheets exporter; without one the in-memory store is used so the worker
// keeps running in development setups.
func NewSummaryExporter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	exporterType := MemoryExporter
	if cfg.GoogleSpreadsheetID != "" {
		exporterType = SheetsExporter
	}

	switch exporterType {
	case SheetsExporter:
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		logger.Info("Initialized Google Sheets exporter",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSummarySheet)
		return &Result{Exporter: cli, Cleanup: nil}, nil

	case MemoryExporter:
		store := memory.New()
		logger.Info("Initialized memory exporter - summaries are not persisted externally")
		return &Result{Exporter: store, Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", exporterType)
	}
}
