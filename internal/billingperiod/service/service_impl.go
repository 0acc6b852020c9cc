package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mietwerklabs/mietwerk/internal/apportionment"
	"github.com/mietwerklabs/mietwerk/internal/billingperiod/domain"
	buildingdomain "github.com/mietwerklabs/mietwerk/internal/building/domain"
	leasedomain "github.com/mietwerklabs/mietwerk/internal/lease/domain"
	"github.com/mietwerklabs/mietwerk/internal/orgcontext"
	unitdomain "github.com/mietwerklabs/mietwerk/internal/unit/domain"
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
	UnitRepo     unitdomain.Repository
	LeaseRepo    leasedomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	buildingRepo buildingdomain.Repository
	unitRepo     unitdomain.Repository
	leaseRepo    leasedomain.Repository
	genID        *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("billingperiod.service"),
		repo:         p.Repo,
		buildingRepo: p.BuildingRepo,
		unitRepo:     p.UnitRepo,
		leaseRepo:    p.LeaseRepo,
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
	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() || !req.PeriodStart.Before(req.PeriodEnd) {
		return nil, domain.ErrInvalidPeriod
	}

	building, err := s.buildingRepo.FindByID(ctx, s.db, accountID, buildingID)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, domain.ErrInvalidBuilding
	}

	now := time.Now().UTC()
	period := &domain.BillingPeriod{
		ID:          s.genID.Generate(),
		AccountID:   accountID,
		BuildingID:  buildingID,
		PeriodStart: req.PeriodStart.UTC(),
		PeriodEnd:   req.PeriodEnd.UTC(),
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, period); err != nil {
		return nil, err
	}

	resp := toResponse(period)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.DetailResponse, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	periodID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	period, err := s.repo.FindByID(ctx, s.db, accountID, periodID)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, domain.ErrNotFound
	}

	items, err := s.repo.ListCostItems(ctx, s.db, accountID, periodID)
	if err != nil {
		return nil, err
	}
	directCosts, err := s.repo.ListDirectCosts(ctx, s.db, accountID, periodID)
	if err != nil {
		return nil, err
	}
	readings, err := s.repo.ListMeterReadings(ctx, s.db, accountID, periodID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]snowflake.ID, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}
	receipts, err := s.repo.ListReceiptsByCostItems(ctx, s.db, accountID, itemIDs)
	if err != nil {
		return nil, err
	}
	receiptsByItem := make(map[snowflake.ID][]domain.ReceiptResponse)
	for i := range receipts {
		receiptsByItem[receipts[i].CostItemID] = append(receiptsByItem[receipts[i].CostItemID], toReceiptResponse(&receipts[i]))
	}

	detail := &domain.DetailResponse{Response: toResponse(period)}
	for i := range items {
		resp := toCostItemResponse(&items[i])
		resp.Receipts = receiptsByItem[items[i].ID]
		detail.CostItems = append(detail.CostItems, resp)
	}
	for i := range directCosts {
		detail.DirectCosts = append(detail.DirectCosts, toDirectCostResponse(&directCosts[i]))
	}
	for i := range readings {
		detail.MeterReadings = append(detail.MeterReadings, toMeterReadingResponse(&readings[i]))
	}
	return detail, nil
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

	periods, err := s.repo.FindByBuilding(ctx, s.db, accountID, id)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(periods))
	for i := range periods {
		resp = append(resp, toResponse(&periods[i]))
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	periodID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	period, err := s.repo.FindByID(ctx, s.db, accountID, periodID)
	if err != nil {
		return err
	}
	if period == nil {
		return domain.ErrNotFound
	}
	if !period.Status.Editable() {
		return domain.ErrPeriodLocked
	}

	return s.repo.Delete(ctx, s.db, accountID, periodID)
}

func (s *Service) SetHeating(ctx context.Context, req domain.SetHeatingRequest) (*domain.Response, error) {
	_, period, err := s.editablePeriod(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}

	if (req.TotalCents == nil) != (req.AreaPercentage == nil) {
		return nil, domain.ErrInvalidHeating
	}
	if req.TotalCents != nil {
		if *req.TotalCents < 0 {
			return nil, domain.ErrInvalidHeating
		}
		if *req.AreaPercentage < 0 || *req.AreaPercentage > 100 {
			return nil, domain.ErrInvalidHeating
		}
	}

	period.HeatingTotalCents = req.TotalCents
	period.HeatingAreaPercentage = req.AreaPercentage
	if err := s.touch(ctx, period); err != nil {
		return nil, err
	}

	resp := toResponse(period)
	return &resp, nil
}

func (s *Service) AddCostItem(ctx context.Context, req domain.AddCostItemRequest) (*domain.CostItemResponse, error) {
	accountID, period, err := s.editablePeriod(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}

	costType, label, err := resolveCostType(req.CostType, req.Label)
	if err != nil {
		return nil, err
	}
	if req.AmountCents < 0 {
		return nil, domain.ErrInvalidAmount
	}
	key, err := resolveAllocationKey(req.AllocationKey)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &domain.CostItem{
		ID:            s.genID.Generate(),
		AccountID:     accountID,
		PeriodID:      period.ID,
		CostType:      costType,
		Label:         label,
		AmountCents:   req.AmountCents,
		AllocationKey: key,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.InsertCostItem(ctx, s.db, item); err != nil {
		return nil, err
	}
	if err := s.touch(ctx, period); err != nil {
		return nil, err
	}

	resp := toCostItemResponse(item)
	return &resp, nil
}

func (s *Service) UpdateCostItem(ctx context.Context, req domain.UpdateCostItemRequest) (*domain.CostItemResponse, error) {
	accountID, period, err := s.editablePeriod(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}

	itemID, err := snowflake.ParseString(strings.TrimSpace(req.ItemID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	item, err := s.repo.FindCostItem(ctx, s.db, accountID, period.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.CostType != nil {
		label := item.Label
		if req.Label != nil {
			label = *req.Label
		}
		costType, resolved, err := resolveCostType(*req.CostType, label)
		if err != nil {
			return nil, err
		}
		item.CostType = costType
		item.Label = resolved
	} else if req.Label != nil {
		label := strings.TrimSpace(*req.Label)
		if label == "" {
			return nil, domain.ErrInvalidCostType
		}
		item.Label = label
	}
	if req.AmountCents != nil {
		if *req.AmountCents < 0 {
			return nil, domain.ErrInvalidAmount
		}
		item.AmountCents = *req.AmountCents
	}
	if req.AllocationKey != nil {
		key, err := resolveAllocationKey(*req.AllocationKey)
		if err != nil {
			return nil, err
		}
		item.AllocationKey = key
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateCostItem(ctx, s.db, item); err != nil {
		return nil, err
	}
	if err := s.touch(ctx, period); err != nil {
		return nil, err
	}

	resp := toCostItemResponse(item)
	return &resp, nil
}

func (s *Service) DeleteCostItem(ctx context.Context, periodID, itemID string) error {
	accountID, period, err := s.editablePeriod(ctx, periodID)
	if err != nil {
		return err
	}

	id, err := snowflake.ParseString(strings.TrimSpace(itemID))
	if err != nil {
		return domain.ErrInvalidID
	}
	item, err := s.repo.FindCostItem(ctx, s.db, accountID, period.ID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.DeleteCostItem(ctx, s.db, accountID, period.ID, id); err != nil {
		return err
	}
	return s.touch(ctx, period)
}

func (s *Service) AttachReceipt(ctx context.Context, req domain.AttachReceiptRequest) (*domain.ReceiptResponse, error) {
	accountID, period, err := s.editablePeriod(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}

	itemID, err := snowflake.ParseString(strings.TrimSpace(req.CostItemID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	item, err := s.repo.FindCostItem(ctx, s.db, accountID, period.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	fileName := strings.TrimSpace(req.FileName)
	storageKey := strings.TrimSpace(req.StorageKey)
	if fileName == "" || storageKey == "" || req.SizeBytes <= 0 {
		return nil, domain.ErrInvalidReceipt
	}

	receipt := &domain.Receipt{
		ID:         s.genID.Generate(),
		AccountID:  accountID,
		CostItemID: itemID,
		FileName:   fileName,
		MimeType:   strings.TrimSpace(req.MimeType),
		SizeBytes:  req.SizeBytes,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.InsertReceipt(ctx, s.db, receipt); err != nil {
		return nil, err
	}

	resp := toReceiptResponse(receipt)
	return &resp, nil
}

func (s *Service) DeleteReceipt(ctx context.Context, periodID, receiptID string) error {
	accountID, _, err := s.editablePeriod(ctx, periodID)
	if err != nil {
		return err
	}

	id, err := snowflake.ParseString(strings.TrimSpace(receiptID))
	if err != nil {
		return domain.ErrInvalidID
	}
	receipt, err := s.repo.FindReceipt(ctx, s.db, accountID, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return domain.ErrNotFound
	}

	return s.repo.DeleteReceipt(ctx, s.db, accountID, id)
}

func (s *Service) AddDirectCost(ctx context.Context, req domain.AddDirectCostRequest) (*domain.DirectCostResponse, error) {
	accountID, period, err := s.editablePeriod(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}

	leaseID, err := snowflake.ParseString(strings.TrimSpace(req.LeaseID))
	if err != nil {
		return nil, domain.ErrInvalidLease
	}
	lease, err := s.leaseRepo.FindByID(ctx, s.db, accountID, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrInvalidLease
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, domain.ErrInvalidCostType
	}
	if req.AmountCents < 0 {
		return nil, domain.ErrInvalidAmount
	}

	cost := &domain.DirectCost{
		ID:          s.genID.Generate(),
		AccountID:   accountID,
		PeriodID:    period.ID,
		LeaseID:     leaseID,
		Label:       label,
		AmountCents: req.AmountCents,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.InsertDirectCost(ctx, s.db, cost); err != nil {
		return nil, err
	}
	if err := s.touch(ctx, period); err != nil {
		return nil, err
	}

	resp := toDirectCostResponse(cost)
	return &resp, nil
}

func (s *Service) DeleteDirectCost(ctx context.Context, periodID, directCostID string) error {
	accountID, period, err := s.editablePeriod(ctx, periodID)
	if err != nil {
		return err
	}

	id, err := snowflake.ParseString(strings.TrimSpace(directCostID))
	if err != nil {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteDirectCost(ctx, s.db, accountID, period.ID, id); err != nil {
		return err
	}
	return s.touch(ctx, period)
}

func (s *Service) UpsertMeterReading(ctx context.Context, req domain.UpsertMeterReadingRequest) (*domain.MeterReadingResponse, error) {
	accountID, period, err := s.editablePeriod(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}

	unitID, err := snowflake.ParseString(strings.TrimSpace(req.UnitID))
	if err != nil {
		return nil, domain.ErrInvalidUnit
	}
	unit, err := s.unitRepo.FindByID(ctx, s.db, accountID, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil || unit.BuildingID != period.BuildingID {
		return nil, domain.ErrInvalidUnit
	}
	if req.ReadingEnd < req.ReadingStart || req.ReadingStart < 0 {
		return nil, domain.ErrInvalidReading
	}

	now := time.Now().UTC()
	reading := &domain.MeterReading{
		ID:           s.genID.Generate(),
		AccountID:    accountID,
		PeriodID:     period.ID,
		UnitID:       unitID,
		ReadingStart: req.ReadingStart,
		ReadingEnd:   req.ReadingEnd,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.UpsertMeterReading(ctx, s.db, reading); err != nil {
		return nil, err
	}
	if err := s.touch(ctx, period); err != nil {
		return nil, err
	}

	resp := toMeterReadingResponse(reading)
	return &resp, nil
}

func (s *Service) DeleteMeterReading(ctx context.Context, periodID, readingID string) error {
	accountID, period, err := s.editablePeriod(ctx, periodID)
	if err != nil {
		return err
	}

	id, err := snowflake.ParseString(strings.TrimSpace(readingID))
	if err != nil {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteMeterReading(ctx, s.db, accountID, period.ID, id); err != nil {
		return err
	}
	return s.touch(ctx, period)
}

// editablePeriod resolves the period and enforces the edit gate: sent
// and completed periods reject all mutations.
func (s *Service) editablePeriod(ctx context.Context, id string) (snowflake.ID, *domain.BillingPeriod, error) {
	accountID, ok := orgcontext.AccountIDFromContext(ctx)
	if !ok || accountID == 0 {
		return 0, nil, domain.ErrInvalidAccount
	}

	periodID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, nil, domain.ErrInvalidID
	}

	period, err := s.repo.FindByID(ctx, s.db, accountID, periodID)
	if err != nil {
		return 0, nil, err
	}
	if period == nil {
		return 0, nil, domain.ErrNotFound
	}
	if !period.Status.Editable() {
		return 0, nil, domain.ErrPeriodLocked
	}
	return accountID, period, nil
}

// touch persists the period after a mutation. A calculated period falls
// back to draft because its stored results no longer match the inputs.
func (s *Service) touch(ctx context.Context, period *domain.BillingPeriod) error {
	if period.Status == domain.StatusCalculated {
		period.Status = domain.StatusDraft
	}
	period.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, s.db, period)
}

func resolveCostType(costType, label string) (string, string, error) {
	costType = strings.TrimSpace(costType)
	label = strings.TrimSpace(label)
	if costType == "" {
		return "", "", domain.ErrInvalidCostType
	}
	if apportionment.IsStandardCostType(costType) {
		if label == "" {
			label = apportionment.CostTypeLabels[costType]
		}
		return costType, label, nil
	}
	if costType == apportionment.CostTypeCustom {
		if label == "" {
			return "", "", domain.ErrInvalidCostType
		}
		return costType, label, nil
	}
	return "", "", domain.ErrInvalidCostType
}

func resolveAllocationKey(key string) (string, error) {
	switch apportionment.AllocationKey(strings.TrimSpace(key)) {
	case apportionment.AllocationArea, apportionment.AllocationPersons,
		apportionment.AllocationUnits, apportionment.AllocationConsumption:
		return strings.TrimSpace(key), nil
	default:
		// The per-lease direct key never applies to pooled items.
		return "", domain.ErrInvalidAllocationKey
	}
}

func toResponse(p *domain.BillingPeriod) domain.Response {
	return domain.Response{
		ID:                    p.ID.String(),
		BuildingID:            p.BuildingID.String(),
		PeriodStart:           p.PeriodStart,
		PeriodEnd:             p.PeriodEnd,
		Status:                p.Status,
		HeatingTotalCents:     p.HeatingTotalCents,
		HeatingAreaPercentage: p.HeatingAreaPercentage,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toCostItemResponse(item *domain.CostItem) domain.CostItemResponse {
	return domain.CostItemResponse{
		ID:            item.ID.String(),
		CostType:      item.CostType,
		Label:         item.Label,
		AmountCents:   item.AmountCents,
		AllocationKey: item.AllocationKey,
	}
}

func toReceiptResponse(r *domain.Receipt) domain.ReceiptResponse {
	return domain.ReceiptResponse{
		ID:         r.ID.String(),
		CostItemID: r.CostItemID.String(),
		FileName:   r.FileName,
		MimeType:   r.MimeType,
		SizeBytes:  r.SizeBytes,
		StorageKey: r.StorageKey,
		CreatedAt:  r.CreatedAt,
	}
}

func toDirectCostResponse(c *domain.DirectCost) domain.DirectCostResponse {
	return domain.DirectCostResponse{
		ID:          c.ID.String(),
		LeaseID:     c.LeaseID.String(),
		Label:       c.Label,
		AmountCents: c.AmountCents,
	}
}

func toMeterReadingResponse(r *domain.MeterReading) domain.MeterReadingResponse {
	return domain.MeterReadingResponse{
		ID:           r.ID.String(),
		UnitID:       r.UnitID.String(),
		ReadingStart: r.ReadingStart,
		ReadingEnd:   r.ReadingEnd,
	}
}
