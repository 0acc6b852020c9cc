package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	"github.com/mietwerklabs/mietwerk/internal/tenant/domain"
	"github.com/mietwerklabs/mietwerk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ibanRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)
	bicRe  = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
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
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tenant.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, domain.ErrInvalidName
	}

	iban, err := normalizeBanking(req.IBAN, ibanRe, domain.ErrInvalidIBAN)
	if err != nil {
		return nil, err
	}
	bic, err := normalizeBanking(req.BIC, bicRe, domain.ErrInvalidBIC)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &domain.Tenant{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     trimOptional(req.Email),
		Phone:     trimOptional(req.Phone),
		IBAN:      iban,
		BIC:       bic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, t); err != nil {
		return nil, err
	}

	resp := toResponse(t)
	return &resp, nil
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

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(item *domain.Tenant) string {
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
	return domain.ListResponse{PageInfo: *pageInfo, Tenants: resp}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	tenantID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, tenantID)
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

	tenantID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, tenantID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.FirstName != nil {
		firstName := strings.TrimSpace(*req.FirstName)
		if firstName == "" {
			return nil, domain.ErrInvalidName
		}
		item.FirstName = firstName
	}
	if req.LastName != nil {
		lastName := strings.TrimSpace(*req.LastName)
		if lastName == "" {
			return nil, domain.ErrInvalidName
		}
		item.LastName = lastName
	}
	if req.Email != nil {
		item.Email = trimOptional(req.Email)
	}
	if req.Phone != nil {
		item.Phone = trimOptional(req.Phone)
	}
	if req.IBAN != nil {
		iban, err := normalizeBanking(req.IBAN, ibanRe, domain.ErrInvalidIBAN)
		if err != nil {
			return nil, err
		}
		item.IBAN = iban
	}
	if req.BIC != nil {
		bic, err := normalizeBanking(req.BIC, bicRe, domain.ErrInvalidBIC)
		if err != nil {
			return nil, err
		}
		item.BIC = bic
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

	tenantID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, accountID, tenantID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, accountID, tenantID)
}

// normalizeBanking trims and uppercases an optional IBAN/BIC and validates
// it against the given pattern. Empty strings clear the field.
func normalizeBanking(value *string, re *regexp.Regexp, invalid error) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(*value), " ", ""))
	if v == "" {
		return nil, nil
	}
	if !re.MatchString(v) {
		return nil, invalid
	}
	return &v, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}

func toResponse(t *domain.Tenant) domain.Response {
	return domain.Response{
		ID:        t.ID.String(),
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Email:     t.Email,
		Phone:     t.Phone,
		IBAN:      t.IBAN,
		BIC:       t.BIC,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
