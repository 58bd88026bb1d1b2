package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/sweetshop-backend/internal/users"
	pkgAuth "github.com/angelmondragon/sweetshop-backend/pkg/auth"
	"github.com/angelmondragon/sweetshop-backend/pkg/auth/session"
	"github.com/angelmondragon/sweetshop-backend/pkg/config"
	"github.com/angelmondragon/sweetshop-backend/pkg/db"
	"github.com/angelmondragon/sweetshop-backend/pkg/db/models"
	"github.com/angelmondragon/sweetshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
	"github.com/angelmondragon/sweetshop-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "Invalid credentials"
	tokenTypeBearer           = "bearer"
)

// Service defines the behavior needed by the auth controllers.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
	Logout(ctx context.Context, accessID string) error
	EnsureAdmin(ctx context.Context, seed AdminSeed) (*users.UserDTO, bool, error)
}

type sessionManager interface {
	Start(ctx context.Context, accessID, userID string) error
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	DB             *db.Client
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Now            func() time.Time
}

type service struct {
	db          *db.Client
	users       *users.Repository
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:          params.DB,
		users:       users.NewRepository(params.DB.DB()),
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		now:         now,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if len(username) < 3 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username must be at least 3 characters")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}
	return s.createUser(ctx, username, email, req.Password, false)
}

func (s *service) createUser(ctx context.Context, username, email, password string, isAdmin bool) (*users.UserDTO, error) {
	passwordHash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		exists, err := repo.ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check user")
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "Username or email already registered")
		}
		created, err = repo.Create(ctx, users.CreateUserDTO{
			Username:     username,
			Email:        email,
			PasswordHash: passwordHash,
			IsAdmin:      isAdmin,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "Username or email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create user")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register user")
	}
	return users.FromModel(created), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	user.LastLoginAt = &now

	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     enums.RoleFor(user.IsAdmin),
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.session.Start(ctx, accessID, user.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   now.Add(s.jwtCfg.AccessTokenTTL()),
		User:        users.FromModel(user),
	}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Could not validate credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Could not validate credentials")
	}
	return users.FromModel(user), nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// EnsureAdmin creates the seed admin, or promotes an existing account with
// the same username. The bool reports whether a new account was created.
func (s *service) EnsureAdmin(ctx context.Context, seed AdminSeed) (*users.UserDTO, bool, error) {
	username := strings.TrimSpace(seed.Username)
	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if username == "" || email == "" || seed.Password == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "admin username, email, and password are required")
	}

	created, err := s.createUser(ctx, username, email, seed.Password, true)
	if err == nil {
		return created, true, nil
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		return nil, false, err
	}

	existing, lookupErr := s.users.FindByUsername(ctx, username)
	if lookupErr != nil {
		return nil, false, err
	}
	if !existing.IsAdmin {
		if err := s.users.SetAdmin(ctx, existing.ID, true); err != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: promote admin")
		}
		existing.IsAdmin = true
	}
	return users.FromModel(existing), false, nil
}

func (s *service) authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	input := strings.TrimSpace(identifier)
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password required")
	}

	var (
		user *models.User
		err  error
	)
	if strings.Contains(input, "@") {
		user, err = s.users.FindByEmail(ctx, strings.ToLower(input))
	} else {
		user, err = s.users.FindByUsername(ctx, input)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}
