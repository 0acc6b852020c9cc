package server

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	apikeydomain "github.com/mietwerklabs/mietwerk/internal/apikey/domain"
	auditdomain "github.com/mietwerklabs/mietwerk/internal/audit/domain"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
)

const (
	contextAccountIDKey    = "account_id"
	contextAPIKeyIDKey     = "api_key_id"
	contextAPIKeyScopesKey = "api_key_scopes"
	contextActorTypeKey    = "actor_type"
)

// APIKeyRequired authenticates requests using an API key only. Account
// identity is derived solely from the api_keys table.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if !s.apiKeyLimiter.Allow(c.Request.Context(), parts[1]) {
			AbortWithError(c, ErrRateLimited)
			return
		}

		hash := apikeydomain.HashAPIKey(parts[1])
		now := time.Now().UTC()

		var record struct {
			ID        snowflake.ID   `gorm:"column:id"`
			AccountID snowflake.ID   `gorm:"column:account_id"`
			KeyHash   string         `gorm:"column:key_hash"`
			Scopes    pq.StringArray `gorm:"column:scopes;type:text[]"`
		}

		if err := s.db.WithContext(c.Request.Context()).Raw(
			`SELECT id, account_id, key_hash, scopes
			 FROM api_keys
			 WHERE key_hash = ?
			   AND is_active = true
			   AND (expires_at IS NULL OR expires_at > ?)
			 LIMIT 1`,
			hash,
			now,
		).Scan(&record).Error; err != nil {
			AbortWithError(c, err)
			return
		}

		if record.ID == 0 || subtle.ConstantTimeCompare([]byte(record.KeyHash), []byte(hash)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		scopes := make([]string, 0, len(record.Scopes))
		scopes = append(scopes, record.Scopes...)

		c.Set(contextAccountIDKey, record.AccountID)
		c.Set(contextAPIKeyIDKey, record.ID)
		c.Set(contextAPIKeyScopesKey, scopes)
		c.Set(contextActorTypeKey, auditdomain.ActorTypeAPIKey)

		ctx := orgcontext.WithAccountID(c.Request.Context(), record.AccountID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
