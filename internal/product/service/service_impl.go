package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/replenix/replenix/internal/accesspolicy"
	"github.com/replenix/replenix/internal/actorcontext"
	"github.com/replenix/replenix/internal/config"
	"github.com/replenix/replenix/internal/product/domain"
	"github.com/replenix/replenix/internal/replenishment"
	supplierdomain "github.com/replenix/replenix/internal/supplier/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	SupplierRepo supplierdomain.Repository
	OpenOrders   domain.OpenOrderChecker
	Replenish    *config.ReplenishmentConfigHolder
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	supplierRepo supplierdomain.Repository
	openOrders   domain.OpenOrderChecker
	replenish    *config.ReplenishmentConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("product.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		supplierRepo: p.SupplierRepo,
		openOrders:   p.OpenOrders,
		replenish:    p.Replenish,
	}
}

func (s *Service) calculator() *replenishment.Calculator {
	return replenishment.NewCalculator(s.replenish.Policy())
}

func (s *Service) Create(ctx context.Context, actor actorcontext.Actor, req domain.CreateRequest) (*domain.Response, error) {
	if !accesspolicy.CanCreateProduct(actor) {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if req.LeadTime == nil || *req.LeadTime < 1 {
		return nil, domain.ErrInvalidLeadTime
	}
	if err := validateSalesHistory(req.SalesHistory); err != nil {
		return nil, err
	}

	serviceLevel := s.replenish.Policy().DefaultServiceLevel
	if req.ServiceLevel != nil {
		serviceLevel = *req.ServiceLevel
	}

	calc := s.calculator()
	metrics, err := calc.Compute(req.SalesHistory, *req.LeadTime, serviceLevel)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:             s.genID.Generate(),
		SupplierID:     actor.SupplierID,
		Name:           name,
		Quantity:       *req.Quantity,
		LeadTime:       *req.LeadTime,
		ServiceLevel:   serviceLevel,
		SalesHistory:   datatypes.NewJSONSlice(append([]int64(nil), req.SalesHistory...)),
		AvgDailyDemand: metrics.AvgDailyDemand,
		DemandStdDev:   metrics.DemandStdDev,
		SafetyStock:    metrics.SafetyStock,
		ReorderPoint:   metrics.ReorderPoint,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}

	resp := s.toResponse(calc, p, s.supplierName(ctx, p.SupplierID))
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, actor actorcontext.Actor, id string, req domain.UpdateRequest) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !accesspolicy.CanMutateProduct(actor, item.SupplierID) {
		return nil, domain.ErrForbidden
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}
	if req.LeadTime != nil {
		if *req.LeadTime < 1 {
			return nil, domain.ErrInvalidLeadTime
		}
		item.LeadTime = *req.LeadTime
	}
	if req.ServiceLevel != nil {
		item.ServiceLevel = *req.ServiceLevel
	}
	if req.SalesHistory != nil {
		if err := validateSalesHistory(*req.SalesHistory); err != nil {
			return nil, err
		}
		item.SalesHistory = datatypes.NewJSONSlice(append([]int64(nil), (*req.SalesHistory)...))
	}

	// derived fields are recomputed on every mutation, never left stale
	calc := s.calculator()
	metrics, err := calc.Compute(item.SalesHistory, item.LeadTime, item.ServiceLevel)
	if err != nil {
		return nil, err
	}
	item.AvgDailyDemand = metrics.AvgDailyDemand
	item.DemandStdDev = metrics.DemandStdDev
	item.SafetyStock = metrics.SafetyStock
	item.ReorderPoint = metrics.ReorderPoint
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := s.toResponse(calc, item, s.supplierName(ctx, item.SupplierID))
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, actor actorcontext.Actor, id string) error {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if !accesspolicy.CanMutateProduct(actor, item.SupplierID) {
		return domain.ErrForbidden
	}

	open, err := s.openOrders.CountOpenByProductID(ctx, s.db, productID)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ErrOpenOrders
	}

	return s.repo.Delete(ctx, s.db, productID)
}

func (s *Service) List(ctx context.Context, actor actorcontext.Actor) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items)
}

func (s *Service) ListBySupplier(ctx context.Context, actor actorcontext.Actor) ([]domain.Response, error) {
	if !actor.IsSupplier() {
		return nil, domain.ErrForbidden
	}
	items, err := s.repo.FindBySupplierID(ctx, s.db, actor.SupplierID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items)
}

func (s *Service) Get(ctx context.Context, actor actorcontext.Actor, id string) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(s.calculator(), item, s.supplierName(ctx, item.SupplierID))
	return &resp, nil
}

func (s *Service) toResponses(ctx context.Context, items []domain.Product) ([]domain.Response, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	names := make(map[snowflake.ID]string, len(suppliers))
	for _, sup := range suppliers {
		names[sup.ID] = sup.Name
	}

	calc := s.calculator()
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, s.toResponse(calc, &items[i], names[items[i].SupplierID]))
	}
	return resp, nil
}

func (s *Service) toResponse(calc *replenishment.Calculator, p *domain.Product, supplierName string) domain.Response {
	status := calc.Classify(p.Quantity, p.ReorderPoint, p.SafetyStock, p.AvgDailyDemand)
	recommended := replenishment.RecommendedOrderQuantity(p.ReorderPoint, p.Quantity, p.AvgDailyDemand)

	return domain.Response{
		ID:                  p.ID.String(),
		Name:                p.Name,
		Quantity:            p.Quantity,
		LeadTime:            p.LeadTime,
		ServiceLevel:        p.ServiceLevel,
		SalesHistory:        append([]int64{}, p.SalesHistory...),
		AvgDailyDemand:      p.AvgDailyDemand,
		DemandStdDev:        p.DemandStdDev,
		SafetyStock:         p.SafetyStock,
		ReorderPoint:        p.ReorderPoint,
		Status:              status,
		RecommendedQuantity: recommended,
		SupplierID:          p.SupplierID.String(),
		SupplierName:        supplierName,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func (s *Service) supplierName(ctx context.Context, supplierID snowflake.ID) string {
	supplier, err := s.supplierRepo.FindByID(ctx, s.db, supplierID)
	if err != nil || supplier == nil {
		return ""
	}
	return supplier.Name
}

func validateSalesHistory(history []int64) error {
	for _, v := range history {
		if v < 0 {
			return domain.ErrInvalidSalesHistory
		}
	}
	return nil
}
