package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/mietwerklabs/mietwerk/internal/config"
	"github.com/mietwerklabs/mietwerk/internal/geocode/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Cfg      *config.Config
	Redis    *redis.Client
	Provider domain.Provider
}

// Service caches provider lookups in redis. Addresses are stable, so a
// generous TTL keeps repeat building edits off the upstream API.
type Service struct {
	log      *zap.Logger
	cfg      *config.Config
	redis    *redis.Client
	provider domain.Provider
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("geocode.service"),
		cfg:      p.Cfg,
		redis:    p.Redis,
		provider: p.Provider,
	}
}

func (s *Service) Forward(ctx context.Context, address string) (*domain.Location, error) {
	address = strings.Join(strings.Fields(address), " ")
	if address == "" {
		return nil, domain.ErrInvalidAddress
	}

	key := cacheKey(address)
	cached, err := s.redis.Get(ctx, key).Result()
	if err == nil {
		var loc domain.Location
		if err := json.Unmarshal([]byte(cached), &loc); err == nil {
			return &loc, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn("geocode cache read failed", zap.Error(err))
	}

	loc, err := s.provider.Forward(ctx, address)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(loc); err == nil {
		if err := s.redis.Set(ctx, key, encoded, s.cfg.Geocode.CacheTTL).Err(); err != nil {
			s.log.Warn("geocode cache write failed", zap.Error(err))
		}
	}
	return loc, nil
}

func cacheKey(address string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(address)))
	return "geocode:" + hex.EncodeToString(sum[:16])
}
