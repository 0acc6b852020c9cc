package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertResults(ctx context.Context, db *gorm.DB, results []Result) error
	ListResults(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID, versionNumber int) ([]Result, error)

	InsertVersion(ctx context.Context, db *gorm.DB, version *Version) error
	LatestVersion(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) (*Version, error)
	ListVersions(ctx context.Context, db *gorm.DB, accountID, periodID snowflake.ID) ([]Version, error)

	// PruneVersionsBefore deletes superseded versions (and their result
	// rows) created before cutoff, always keeping the latest version of
	// each period. Returns the number of versions removed.
	PruneVersionsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}
