package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
)

// ExportRequest selects one account's trail over [From, To). Exports are
// always account scoped; there is no cross-account export surface.
type ExportRequest struct {
	AccountID snowflake.ID
	From      time.Time
	To        time.Time
	Format    ExportFormat
	Actions   []string
}

// ExportResult carries the rendered trail plus a sha256 checksum so the
// recipient can verify the file was not altered after download.
type ExportResult struct {
	Data     []byte
	Checksum string
	Format   ExportFormat
	Count    int
}

type Exporter interface {
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
}
