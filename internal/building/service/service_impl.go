package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/mietwerklabs/mietwerk/internal/building/domain"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	"github.com/mietwerklabs/mietwerk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var postalCodeRe = regexp.MustCompile(`^[0-9]{4,10}$`)

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
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("building.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	street := strings.TrimSpace(req.Street)
	houseNumber := strings.TrimSpace(req.HouseNumber)
	city := strings.TrimSpace(req.City)
	if street == "" || houseNumber == "" || city == "" {
		return nil, domain.ErrInvalidAddress
	}
	postalCode := strings.TrimSpace(req.PostalCode)
	if !postalCodeRe.MatchString(postalCode) {
		return nil, domain.ErrInvalidPostalCode
	}
	if req.TotalArea <= 0 {
		return nil, domain.ErrInvalidTotalArea
	}

	now := time.Now().UTC()
	b := &domain.Building{
		ID:          s.genID.Generate(),
		AccountID:   accountID,
		Slug:        slug.Make(name),
		Name:        name,
		Street:      street,
		HouseNumber: houseNumber,
		PostalCode:  postalCode,
		City:        city,
		TotalArea:   req.TotalArea,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, b); err != nil {
		return nil, err
	}

	resp := toResponse(b)
	return &resp, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return 0, domain.ErrInvalidAccount
	}
	return s.repo.Count(ctx, s.db, accountID)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return domain.ListResponse{}, domain.ErrInvalidAccount
	}

	pageSize := req.PageSize
	if pageSize < 0 {
		pageSize = 0
	} else if pageSize == 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, accountID, req, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(item *domain.Building) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}

	return domain.ListResponse{PageInfo: *pageInfo, Buildings: resp}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	buildingID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, buildingID)
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

	buildingID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, buildingID)
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
		item.Slug = slug.Make(name)
	}
	if req.Street != nil {
		street := strings.TrimSpace(*req.Street)
		if street == "" {
			return nil, domain.ErrInvalidAddress
		}
		item.Street = street
	}
	if req.HouseNumber != nil {
		houseNumber := strings.TrimSpace(*req.HouseNumber)
		if houseNumber == "" {
			return nil, domain.ErrInvalidAddress
		}
		item.HouseNumber = houseNumber
	}
	if req.PostalCode != nil {
		postalCode := strings.TrimSpace(*req.PostalCode)
		if !postalCodeRe.MatchString(postalCode) {
			return nil, domain.ErrInvalidPostalCode
		}
		item.PostalCode = postalCode
	}
	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		if city == "" {
			return nil, domain.ErrInvalidAddress
		}
		item.City = city
	}
	if req.TotalArea != nil {
		if *req.TotalArea <= 0 {
			return nil, domain.ErrInvalidTotalArea
		}
		item.TotalArea = *req.TotalArea
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

	buildingID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, buildingID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, accountID, buildingID)
}

func toResponse(b *domain.Building) domain.Response {
	return domain.Response{
		ID:          b.ID.String(),
		Slug:        b.Slug,
		Name:        b.Name,
		Street:      b.Street,
		HouseNumber: b.HouseNumber,
		PostalCode:  b.PostalCode,
		City:        b.City,
		TotalArea:   b.TotalArea,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
