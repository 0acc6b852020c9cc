package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	buildingdomain "github.com/mietwerklabs/mietwerk/internal/building/domain"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	"github.com/mietwerklabs/mietwerk/internal/unit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	BuildingRepo buildingdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	buildingRepo buildingdomain.Repository
	genID        *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("unit.service"),
		repo:         p.Repo,
		buildingRepo: p.BuildingRepo,
		genID:        p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	buildingID, err := snowflake.ParseString(strings.TrimSpace(req.BuildingID))
	if err != nil {
		return nil, domain.ErrInvalidBuilding
	}
	building, err := s.buildingRepo.FindByID(ctx, s.db, accountID, buildingID)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, domain.ErrInvalidBuilding
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Area <= 0 {
		return nil, domain.ErrInvalidArea
	}

	now := time.Now().UTC()
	u := &domain.Unit{
		ID:              s.genID.Generate(),
		AccountID:       accountID,
		BuildingID:      buildingID,
		Name:            name,
		Area:            req.Area,
		Floor:           req.Floor,
		Rooms:           req.Rooms,
		HasHeatingMeter: req.HasHeatingMeter,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Insert(ctx, s.db, u); err != nil {
		return nil, err
	}

	resp := toResponse(u)
	return &resp, nil
}

func (s *Service) ListByBuilding(ctx context.Context, buildingID string) ([]domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	id, err := snowflake.ParseString(strings.TrimSpace(buildingID))
	if err != nil {
		return nil, domain.ErrInvalidBuilding
	}

	units, err := s.repo.FindByBuilding(ctx, s.db, accountID, id)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(units))
	for i := range units {
		resp = append(resp, toResponse(&units[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	unitID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, unitID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	unitID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, unitID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Area != nil {
		if *req.Area <= 0 {
			return nil, domain.ErrInvalidArea
		}
		item.Area = *req.Area
	}
	if req.Floor != nil {
		item.Floor = req.Floor
	}
	if req.Rooms != nil {
		item.Rooms = req.Rooms
	}
	if req.HasHeatingMeter != nil {
		item.HasHeatingMeter = *req.HasHeatingMeter
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	unitID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, unitID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, accountID, unitID)
}

func toResponse(u *domain.Unit) domain.Response {
	return domain.Response{
		ID:              u.ID.String(),
		BuildingID:      u.BuildingID.String(),
		Name:            u.Name,
		Area:            u.Area,
		Floor:           u.Floor,
		Rooms:           u.Rooms,
		HasHeatingMeter: u.HasHeatingMeter,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
