// Package server exposes the HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/replenix/replenix/internal/actorcontext"
	"github.com/replenix/replenix/internal/auth"
	authdomain "github.com/replenix/replenix/internal/auth/domain"
	"github.com/replenix/replenix/internal/auth/session"
	"github.com/replenix/replenix/internal/config"
	"github.com/replenix/replenix/internal/migration"
	"github.com/replenix/replenix/internal/observability"
	obslogger "github.com/replenix/replenix/internal/observability/logger"
	obsmetrics "github.com/replenix/replenix/internal/observability/metrics"
	"github.com/replenix/replenix/internal/order"
	orderdomain "github.com/replenix/replenix/internal/order/domain"
	"github.com/replenix/replenix/internal/product"
	productdomain "github.com/replenix/replenix/internal/product/domain"
	"github.com/replenix/replenix/internal/ratelimit"
	"github.com/replenix/replenix/internal/supplier"
	supplierdomain "github.com/replenix/replenix/internal/supplier/domain"
	"github.com/replenix/replenix/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	config.Module,
	observability.Module,
	db.Module,
	migration.Module,
	fx.Provide(registerGin),
	auth.Module,
	supplier.Module,
	product.Module,
	order.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	authsvc      authdomain.Service
	sessions     *session.Manager
	productSvc   productdomain.Service
	orderSvc     orderdomain.Service
	supplierSvc  supplierdomain.Service
	loginLimiter *ratelimit.LoginLimiter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Authsvc      authdomain.Service
	Sessions     *session.Manager
	ProductSvc   productdomain.Service
	OrderSvc     orderdomain.Service
	SupplierSvc  supplierdomain.Service
	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		authsvc:      p.Authsvc,
		sessions:     p.Sessions,
		productSvc:   p.ProductSvc,
		orderSvc:     p.OrderSvc,
		supplierSvc:  p.SupplierSvc,
		loginLimiter: p.LoginLimiter,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.Register)
	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)

	authed := api.Group("", s.AuthRequired())

	authed.GET("/products", s.ListProducts)
	authed.POST("/products", s.CreateProduct)
	authed.GET("/products/:id", s.GetProduct)
	authed.PUT("/products/:id", s.UpdateProduct)
	authed.DELETE("/products/:id", s.DeleteProduct)

	authed.GET("/suppliers", s.ListSuppliers)

	authed.GET("/orders", s.ListOrders)
	authed.POST("/orders", s.CreateOrder)
	authed.PUT("/orders/:id/approve", RequireRole(actorcontext.RoleChief), s.ApproveOrder)
	authed.PUT("/orders/:id/reject", RequireRole(actorcontext.RoleChief), s.RejectOrder)

	supplierGroup := authed.Group("/supplier", RequireRole(actorcontext.RoleSupplier))
	supplierGroup.GET("/products", s.ListSupplierProducts)
	supplierGroup.GET("/orders", s.ListSupplierOrders)
	supplierGroup.PUT("/orders/:id/confirm", s.ConfirmOrder)
	supplierGroup.PUT("/orders/:id/reject", s.SupplierRejectOrder)
}
