package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	auditdomain "github.com/mietwerklabs/mietwerk/internal/audit/domain"
	"gorm.io/gorm"
)

type Exporter struct {
	db *gorm.DB
}

func NewExporter(db *gorm.DB) auditdomain.Exporter {
	return &Exporter{db: db}
}

// exportRecord is the flattened row shared by both output formats.
type exportRecord struct {
	Timestamp  string         `json:"timestamp"`
	ActorType  string         `json:"actor_type"`
	ActorID    string         `json:"actor_id,omitempty"`
	Action     string         `json:"action"`
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id,omitempty"`
	IPAddress  string         `json:"ip_address,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func (e *Exporter) Export(ctx context.Context, req auditdomain.ExportRequest) (*auditdomain.ExportResult, error) {
	query := e.db.WithContext(ctx).Model(&auditdomain.AuditLog{}).
		Where("account_id = ?", req.AccountID).
		Where("created_at >= ? AND created_at < ?", req.From, req.To)
	if len(req.Actions) > 0 {
		query = query.Where("action IN ?", req.Actions)
	}

	var logs []auditdomain.AuditLog
	if err := query.Order("created_at ASC").Find(&logs).Error; err != nil {
		return nil, err
	}

	records := make([]exportRecord, 0, len(logs))
	for _, row := range logs {
		records = append(records, exportRecord{
			Timestamp:  row.CreatedAt.Format(time.RFC3339),
			ActorType:  row.ActorType,
			ActorID:    deref(row.ActorID),
			Action:     row.Action,
			TargetType: row.TargetType,
			TargetID:   deref(row.TargetID),
			IPAddress:  deref(row.IPAddress),
			UserAgent:  deref(row.UserAgent),
			Metadata:   map[string]any(row.Metadata),
		})
	}

	var data []byte
	var err error
	switch req.Format {
	case auditdomain.ExportFormatCSV:
		data, err = renderCSV(records)
	case auditdomain.ExportFormatJSON:
		data, err = json.MarshalIndent(records, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported export format: %s", req.Format)
	}
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	return &auditdomain.ExportResult{
		Data:     data,
		Checksum: hex.EncodeToString(sum[:]),
		Format:   req.Format,
		Count:    len(records),
	}, nil
}

func renderCSV(records []exportRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{
		"timestamp", "actor_type", "actor_id", "action",
		"target_type", "target_id", "ip_address", "user_agent", "metadata",
	}); err != nil {
		return nil, err
	}
	for _, rec := range records {
		metadataJSON, _ := json.Marshal(rec.Metadata)
		if err := w.Write([]string{
			rec.Timestamp, rec.ActorType, rec.ActorID, rec.Action,
			rec.TargetType, rec.TargetID, rec.IPAddress, rec.UserAgent,
			string(metadataJSON),
		}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
