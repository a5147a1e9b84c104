package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/pkg/logger"
)

// TokenPair is returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service provides authentication operations.
type Service struct {
	repo Repository
	jwt  *JWTService
}

// NewService creates an auth Service.
func NewService(repo Repository, jwtSvc *JWTService) *Service {
	return &Service{repo: repo, jwt: jwtSvc}
}

// Login verifies credentials and issues a token pair. Invalid email and
// invalid password return the same error to prevent account probing.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, *User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, nil, apperror.NewInternal(err)
	}

	if !user.IsActive {
		return nil, nil, apperror.NewUnauthorized("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.SetLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		logger.Warn(ctx, "failed to record last login", "userId", user.ID.String(), "error", err)
	}

	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	subject, err := s.jwt.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := id.Parse(subject)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid refresh token")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewUnauthorized("invalid refresh token")
		}
		return nil, apperror.NewInternal(err)
	}

	if !user.IsActive {
		return nil, apperror.NewUnauthorized("account disabled")
	}

	return s.issuePair(user)
}

// Register creates a user account with a hashed password.
func (s *Service) Register(ctx context.Context, email, fullName, password string, roles []string) (*User, error) {
	if len(password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	user := NewUser(email, fullName)
	user.Roles = roles

	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewInternal(err)
	}
	if existing != nil {
		return nil, apperror.NewDuplicate("user", "email", user.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	user.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user registered", "userId", user.ID.String(), "email", user.Email)
	return user, nil
}

// GetByID returns a user account.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, apperror.NewInternal(err)
	}
	return user, nil
}

func (s *Service) issuePair(user *User) (*TokenPair, error) {
	access, err := s.jwt.IssueAccess(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	refresh, err := s.jwt.IssueRefresh(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
