package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// APIKey authenticates programmatic access to one account. Only the
// sha256 hash is stored; the raw key is shown once at creation.
type APIKey struct {
	ID        snowflake.ID   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	AccountID snowflake.ID   `json:"account_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"type:text;not null"`
	KeyHash   string         `json:"-" gorm:"type:varchar(64);not null;uniqueIndex"`
	Prefix    string         `json:"prefix" gorm:"type:varchar(12);not null"`
	Scopes    pq.StringArray `json:"scopes" gorm:"type:text[]"`
	IsActive  bool           `json:"is_active" gorm:"not null;default:true"`
	ExpiresAt *time.Time     `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null"`
}

func (APIKey) TableName() string { return "api_keys" }

// HashAPIKey derives the stored lookup hash from a raw key.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}

// GenerateAPIKey returns a fresh raw key. The "mw_" prefix lets leaked
// keys be recognized in scanners.
func GenerateAPIKey() string {
	return "mw_" + strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// KeyPrefix is the displayable fragment stored alongside the hash.
func KeyPrefix(raw string) string {
	if len(raw) <= 10 {
		return raw
	}
	return raw[:10]
}
