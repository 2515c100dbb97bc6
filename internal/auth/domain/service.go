package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/replenix/replenix/internal/actorcontext"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	// Authenticate resolves a session token to the acting identity,
	// including the supplier linkage for supplier accounts.
	Authenticate(ctx context.Context, rawToken string) (*actorcontext.Actor, error)
}

type RegisterRequest struct {
	Username string
	Password string
	Role     actorcontext.Role
	// Supplier registration fields.
	CompanyName string
	ContactInfo string
}

type RegisterResult struct {
	UserID     snowflake.ID
	Username   string
	Role       actorcontext.Role
	SupplierID snowflake.ID
}

type LoginRequest struct {
	Username  string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	Actor     actorcontext.Actor
	Username  string
	RawToken  string
	ExpiresAt time.Time
}
