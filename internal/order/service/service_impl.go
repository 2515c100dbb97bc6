package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/replenix/replenix/internal/accesspolicy"
	"github.com/replenix/replenix/internal/actorcontext"
	"github.com/replenix/replenix/internal/order/domain"
	productdomain "github.com/replenix/replenix/internal/product/domain"
	supplierdomain "github.com/replenix/replenix/internal/supplier/domain"
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
	ProductRepo  productdomain.Repository
	SupplierRepo supplierdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	productRepo  productdomain.Repository
	supplierRepo supplierdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("order.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		productRepo:  p.ProductRepo,
		supplierRepo: p.SupplierRepo,
	}
}

func (s *Service) Create(ctx context.Context, actor actorcontext.Actor, req domain.CreateRequest) (*domain.Response, error) {
	if !accesspolicy.CanCreateOrder(actor) {
		return nil, domain.ErrForbidden
	}
	if req.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.SupplierID == 0 {
		return nil, domain.ErrProductWithoutSupplier
	}

	supplier, err := s.supplierRepo.FindByID(ctx, s.db, product.SupplierID)
	if err != nil {
		return nil, err
	}
	supplierName := ""
	if supplier != nil {
		supplierName = supplier.Name
	}

	now := time.Now().UTC()
	o := &domain.Order{
		ID:           s.genID.Generate(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		SupplierID:   product.SupplierID,
		SupplierName: supplierName,
		Quantity:     req.Quantity,
		Status:       domain.StatusPendingChiefApproval,
		CreatedByID:  actor.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, o); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("product_id", o.ProductID.String()),
		zap.Int64("quantity", o.Quantity),
	)

	resp := domain.ToResponse(o)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, actor actorcontext.Actor) ([]domain.Response, error) {
	var (
		items []domain.Order
		err   error
	)
	if accesspolicy.CanViewAllOrders(actor) {
		items, err = s.repo.FindAll(ctx, s.db)
	} else {
		items, err = s.repo.FindBySupplierID(ctx, s.db, actor.SupplierID, nil)
	}
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) ListPendingForSupplier(ctx context.Context, actor actorcontext.Actor) ([]domain.Response, error) {
	if !actor.IsSupplier() {
		return nil, domain.ErrForbidden
	}
	items, err := s.repo.FindBySupplierID(ctx, s.db, actor.SupplierID, []domain.Status{domain.StatusPendingSupplierApproval})
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) Approve(ctx context.Context, actor actorcontext.Actor, id string) (*domain.Response, error) {
	return s.transition(ctx, actor, id, accesspolicy.ActionApprove)
}

func (s *Service) RejectByChief(ctx context.Context, actor actorcontext.Actor, id string) (*domain.Response, error) {
	return s.transition(ctx, actor, id, accesspolicy.ActionRejectByChief)
}

func (s *Service) Confirm(ctx context.Context, actor actorcontext.Actor, id string) (*domain.Response, error) {
	return s.transition(ctx, actor, id, accesspolicy.ActionConfirm)
}

func (s *Service) RejectBySupplier(ctx context.Context, actor actorcontext.Actor, id string) (*domain.Response, error) {
	return s.transition(ctx, actor, id, accesspolicy.ActionRejectBySupplier)
}

// transition loads the order, checks role and ownership, then applies
// the state change with a compare-and-swap. Losing the swap means the
// order already left the expected state, which callers see as an
// invalid transition regardless of who got there first.
func (s *Service) transition(ctx context.Context, actor actorcontext.Actor, id string, action accesspolicy.OrderAction) (*domain.Response, error) {
	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	o, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if !accesspolicy.CanTransitionOrder(actor, action, o.SupplierID) {
		return nil, domain.ErrForbidden
	}

	from, to, ok := domain.TransitionFor(action)
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	changed, err := s.repo.UpdateStatus(ctx, s.db, orderID, from, to, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, domain.ErrInvalidTransition
	}

	s.log.Info("order transitioned",
		zap.String("order_id", orderID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor_id", actor.UserID.String()),
	)

	o.Status = to
	o.UpdatedAt = now
	resp := domain.ToResponse(o)
	return &resp, nil
}

func toResponses(items []domain.Order) []domain.Response {
	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, domain.ToResponse(&items[i]))
	}
	return resp
}
