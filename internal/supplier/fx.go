package supplier

import (
	"github.com/replenix/replenix/internal/supplier/repository"
	"github.com/replenix/replenix/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
