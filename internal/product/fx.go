package product

import (
	"github.com/replenix/replenix/internal/product/repository"
	"github.com/replenix/replenix/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
