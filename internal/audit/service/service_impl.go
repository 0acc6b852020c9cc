package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/audit/domain"
	"github.com/mietwerklabs/mietwerk/internal/audit/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  repository.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, entry domain.Entry) {
	row := &domain.AuditLog{
		ID:         s.genID.Generate(),
		AccountID:  entry.AccountID,
		ActorType:  entry.ActorType,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		Metadata:   datatypes.JSONMap(entry.Metadata),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, row); err != nil {
		s.log.Error("audit record failed",
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}

func (s *Service) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.repo.DeleteBefore(ctx, s.db, cutoff)
}
