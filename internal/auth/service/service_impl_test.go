package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/replenix/replenix/internal/actorcontext"
	"github.com/replenix/replenix/internal/auth/domain"
	authrepository "github.com/replenix/replenix/internal/auth/repository"
	supplierdomain "github.com/replenix/replenix/internal/supplier/domain"
	supplierrepository "github.com/replenix/replenix/internal/supplier/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&supplierdomain.Supplier{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         authrepository.ProvideUserRepository(),
		SessionRepo:  authrepository.ProvideSessionRepository(),
		SupplierRepo: supplierrepository.Provide(),
	})
	return svc, db
}

func TestRegisterFirstInternalUserBecomesChief(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, actorcontext.RoleChief, first.Role)

	second, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "bob", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, actorcontext.RoleManager, second.Role)
}

func TestRegisterSupplierCreatesLinkedRecord(t *testing.T) {
	svc, db := newTestService(t)

	result, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username:    "acme",
		Password:    "secret1",
		Role:        actorcontext.RoleSupplier,
		CompanyName: "Acme Metals",
		ContactInfo: "sales@acme.example",
	})
	require.NoError(t, err)
	assert.Equal(t, actorcontext.RoleSupplier, result.Role)
	require.NotZero(t, result.SupplierID)

	var sup supplierdomain.Supplier
	require.NoError(t, db.Where("id = ?", result.SupplierID).Take(&sup).Error)
	assert.Equal(t, result.UserID, sup.UserID)
	assert.Equal(t, "Acme Metals", sup.Name)

	// supplier registrations do not affect the chief bootstrap
	internal, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, actorcontext.RoleChief, internal.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		name string
		req  domain.RegisterRequest
		want error
	}{
		{"short username", domain.RegisterRequest{Username: "ab", Password: "secret1"}, domain.ErrInvalidUsername},
		{"bad characters", domain.RegisterRequest{Username: "a b!c", Password: "secret1"}, domain.ErrInvalidUsername},
		{"short password", domain.RegisterRequest{Username: "alice", Password: "12345"}, domain.ErrInvalidPassword},
		{"unknown role", domain.RegisterRequest{Username: "alice", Password: "secret1", Role: "admin"}, domain.ErrInvalidRole},
		{"supplier without company", domain.RegisterRequest{Username: "acme", Password: "secret1", Role: actorcontext.RoleSupplier, ContactInfo: "sales@acme.example"}, domain.ErrInvalidCompanyName},
		{"supplier without contact", domain.RegisterRequest{Username: "acme", Password: "secret1", Role: actorcontext.RoleSupplier, CompanyName: "Acme"}, domain.ErrInvalidContactInfo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{Username: "alice", Password: "another1"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)

	reg, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username:    "acme",
		Password:    "secret1",
		Role:        actorcontext.RoleSupplier,
		CompanyName: "Acme Metals",
		ContactInfo: "sales@acme.example",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), domain.LoginRequest{Username: "acme", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RawToken)
	assert.Equal(t, reg.SupplierID, result.Actor.SupplierID)

	actor, err := svc.Authenticate(context.Background(), result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, actor.UserID)
	assert.Equal(t, actorcontext.RoleSupplier, actor.Role)
	assert.Equal(t, reg.SupplierID, actor.SupplierID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), domain.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.RawToken))

	_, err = svc.Authenticate(context.Background(), result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)

	// unknown tokens are a no-op
	require.NoError(t, svc.Logout(context.Background(), "deadbeef"))
}
