package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog is one recorded action against account data. Rows are append
// only; retention pruning is the only delete path.
type AuditLog struct {
	ID         snowflake.ID      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	AccountID  *snowflake.ID     `json:"account_id" gorm:"index"`
	ActorType  string            `json:"actor_type" gorm:"type:varchar(50);not null"`
	ActorID    *string           `json:"actor_id" gorm:"type:varchar(255)"`
	Action     string            `json:"action" gorm:"type:varchar(100);not null;index"`
	TargetType string            `json:"target_type" gorm:"type:varchar(100);not null"`
	TargetID   *string           `json:"target_id" gorm:"type:varchar(255)"`
	IPAddress  *string           `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent  *string           `json:"user_agent" gorm:"type:text"`
	Metadata   datatypes.JSONMap `json:"metadata" gorm:"type:jsonb;default:'{}'"`
	CreatedAt  time.Time         `json:"created_at" gorm:"not null;index"`
}

func (AuditLog) TableName() string { return "audit_logs" }

const (
	ActorTypeAPIKey = "api_key"
	ActorTypeSystem = "system"
)
