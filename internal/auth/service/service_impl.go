package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/replenix/replenix/internal/actorcontext"
	"github.com/replenix/replenix/internal/auth/domain"
	"github.com/replenix/replenix/internal/auth/password"
	supplierdomain "github.com/replenix/replenix/internal/supplier/domain"
	"github.com/replenix/replenix/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour

	minUsernameLength = 3
	maxUsernameLength = 20
	minPasswordLength = 6
	minCompanyName    = 2
	minContactInfo    = 5
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         domain.Repository
	SessionRepo  domain.SessionRepository
	SupplierRepo supplierdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         domain.Repository
	sessionRepo  domain.SessionRepository
	supplierRepo supplierdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("auth.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		sessionRepo:  p.SessionRepo,
		supplierRepo: p.SupplierRepo,
	}
}

// Register creates an account. Supplier registrations create the linked
// supplier record in the same transaction. The first internal account
// becomes the chief; later internal accounts are managers.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLength || len(username) > maxUsernameLength || !usernamePattern.MatchString(username) {
		return nil, domain.ErrInvalidUsername
	}
	if len(req.Password) < minPasswordLength {
		return nil, domain.ErrInvalidPassword
	}

	role := req.Role
	if role == "" {
		role = actorcontext.RoleManager
	}

	var companyName, contactInfo string
	switch role {
	case actorcontext.RoleSupplier:
		companyName = strings.TrimSpace(req.CompanyName)
		contactInfo = strings.TrimSpace(req.ContactInfo)
		if len(companyName) < minCompanyName {
			return nil, domain.ErrInvalidCompanyName
		}
		if len(contactInfo) < minContactInfo {
			return nil, domain.ErrInvalidContactInfo
		}
	case actorcontext.RoleManager, actorcontext.RoleChief:
		// assigned below from the registration order
	default:
		return nil, domain.ErrInvalidRole
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &domain.RegisterResult{Username: username}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByUsername(ctx, tx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrUserExists
		}

		if role != actorcontext.RoleSupplier {
			internal, err := s.repo.CountInternal(ctx, tx)
			if err != nil {
				return err
			}
			if internal == 0 {
				role = actorcontext.RoleChief
			} else {
				role = actorcontext.RoleManager
			}
		}

		user := &domain.User{
			ID:           s.genID.Generate(),
			Username:     username,
			PasswordHash: hashed,
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.Create(ctx, tx, user); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrUserExists
			}
			return err
		}
		result.UserID = user.ID
		result.Role = role

		if role == actorcontext.RoleSupplier {
			supplier := &supplierdomain.Supplier{
				ID:          s.genID.Generate(),
				UserID:      user.ID,
				Name:        companyName,
				ContactInfo: contactInfo,
				CreatedAt:   now,
			}
			if err := s.supplierRepo.Create(ctx, tx, supplier); err != nil {
				return err
			}
			result.SupplierID = supplier.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.String("username", result.Username),
		zap.String("role", string(result.Role)),
	)
	return result, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	actor, err := s.actorFor(ctx, user)
	if err != nil {
		return nil, err
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        req.UserAgent,
		IPAddress:        req.IPAddress,
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessionRepo.Create(ctx, s.db, session); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		Actor:     actor,
		Username:  user.Username,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return nil
	}
	session, err := s.sessionRepo.FindByTokenHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, s.db, session.ID, time.Now().UTC())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*actorcontext.Actor, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.FindByTokenHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrInvalidSession
	}
	now := time.Now().UTC()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.repo.FindByID(ctx, s.db, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidSession
	}

	actor, err := s.actorFor(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.UpdateLastSeen(ctx, s.db, session.ID, now); err != nil {
		s.log.Warn("session last-seen update failed", zap.Error(err))
	}
	return &actor, nil
}

func (s *Service) actorFor(ctx context.Context, user *domain.User) (actorcontext.Actor, error) {
	actor := actorcontext.Actor{
		UserID: user.ID,
		Role:   user.Role,
	}
	if user.Role == actorcontext.RoleSupplier {
		supplier, err := s.supplierRepo.FindByUserID(ctx, s.db, user.ID)
		if err != nil {
			return actorcontext.Actor{}, err
		}
		if supplier == nil {
			return actorcontext.Actor{}, domain.ErrInvalidSession
		}
		actor.SupplierID = supplier.ID
	}
	return actor, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
