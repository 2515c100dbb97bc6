package order

import (
	"github.com/replenix/replenix/internal/order/repository"
	"github.com/replenix/replenix/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideOpenOrderChecker),
	fx.Provide(service.New),
)
