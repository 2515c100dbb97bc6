package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/replenix/replenix/internal/actorcontext"
	orderdomain "github.com/replenix/replenix/internal/order/domain"
)

type createOrderRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), actor, orderdomain.CreateRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListOrders(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ApproveOrder(c *gin.Context) {
	s.transitionOrder(c, s.orderSvc.Approve)
}

func (s *Server) RejectOrder(c *gin.Context) {
	s.transitionOrder(c, s.orderSvc.RejectByChief)
}

func (s *Server) ConfirmOrder(c *gin.Context) {
	s.transitionOrder(c, s.orderSvc.Confirm)
}

func (s *Server) SupplierRejectOrder(c *gin.Context) {
	s.transitionOrder(c, s.orderSvc.RejectBySupplier)
}

// ListSupplierOrders is the supplier's confirmation inbox, limited to
// orders awaiting their decision.
func (s *Server) ListSupplierOrders(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.orderSvc.ListPendingForSupplier(c.Request.Context(), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) transitionOrder(c *gin.Context, apply func(ctx context.Context, actor actorcontext.Actor, id string) (*orderdomain.Response, error)) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := apply(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
