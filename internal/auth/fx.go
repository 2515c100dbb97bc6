package auth

import (
	"github.com/replenix/replenix/internal/auth/repository"
	"github.com/replenix/replenix/internal/auth/service"
	"github.com/replenix/replenix/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.ProvideUserRepository),
	fx.Provide(repository.ProvideSessionRepository),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
