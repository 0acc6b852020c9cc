package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/apikey/domain"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("apikey.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CreatedResponse, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidAccount
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	raw := domain.GenerateAPIKey()
	key := &domain.APIKey{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		Name:      name,
		KeyHash:   domain.HashAPIKey(raw),
		Prefix:    domain.KeyPrefix(raw),
		Scopes:    req.Scopes,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, key); err != nil {
		return nil, err
	}

	s.log.Info("api key created",
		zap.String("account_id", accountID.String()),
		zap.String("key_id", key.ID.String()))

	return &domain.CreatedResponse{Response: toResponse(key), Key: raw}, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidAccount
	}
	keys, err := s.repo.FindByAccount(ctx, s.db, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Response, 0, len(keys))
	for i := range keys {
		out = append(out, toResponse(&keys[i]))
	}
	return out, nil
}

func (s *Service) Revoke(ctx context.Context, id string) error {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidAccount
	}
	keyID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	return s.repo.Deactivate(ctx, s.db, accountID, keyID)
}

func toResponse(key *domain.APIKey) domain.Response {
	return domain.Response{
		ID:        key.ID.String(),
		Name:      key.Name,
		Prefix:    key.Prefix,
		Scopes:    key.Scopes,
		IsActive:  key.IsActive,
		ExpiresAt: key.ExpiresAt,
		CreatedAt: key.CreatedAt,
	}
}
