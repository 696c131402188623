package backend

import (
	"financas/internal/sheets"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the exporter instance and optional cleanup function
type Result struct {
	Exporter sheets.SummaryExporter
	Cleanup  CleanupFunc
}

// ExporterType selects where recomputed summaries are exported
type ExporterType string

const (
	SheetsExporter ExporterType = "sheets"
	MemoryExporter ExporterType = "memory"
	NoExporter     ExporterType = "none"
)

// String implements fmt.Stringer
func (et ExporterType) String() string {
	return string(et)
}

// IsValid returns true if the exporter type is valid
func (et ExporterType) IsValid() bool {
	switch et {
	case SheetsExporter, MemoryExporter, NoExporter:
		return true
	default:
		return false
	}
}
