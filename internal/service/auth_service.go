package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"zintasa/backend/config"
	"zintasa/backend/internal/dto"
	"zintasa/backend/internal/model"
	"zintasa/backend/internal/repository"
	"zintasa/backend/pkg/apperr"
	"zintasa/backend/pkg/session"
)

// ── Auth errors ──

var (
	ErrInvalidCredentials = apperr.Authentication("invalid credentials")
	ErrRoleMismatch       = apperr.Authentication("account does not match the requested role")
	// ErrAmbiguousEmail fails closed: when several active accounts share
	// an email the gate refuses to guess which one is signing in.
	ErrAmbiguousEmail = apperr.Conflict("multiple accounts share this email; sign in with your username instead")
)

// LoginResult is a successful authentication: the identity, the signed
// session cookie token and its lifetime in seconds.
type LoginResult struct {
	Token     string
	ExpiresIn int
	User      dto.UserResponse
}

// AuthService is the access-control gate: it authenticates callers,
// manages their sessions and bootstraps accounts.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, jti string) error
	CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*dto.UserResponse, error)
}

type authService struct {
	cfg      *config.Config
	repo     *repository.Repository
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAuthService builds the AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	sessions *session.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:      cfg,
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error) {
	user, err := s.resolveAccount(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if req.Role != "" && req.Role != user.Role {
		return nil, ErrRoleMismatch
	}

	id := &session.Identity{
		UserID:      user.UserID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		RoomNumber:  user.RoomNumber,
		Department:  user.Department,
	}
	token, err := s.sessions.Issue(ctx, id)
	if err != nil {
		s.logger.Error("issue session failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: int(s.sessions.TTL().Seconds()),
		User:      toUserResponse(user),
	}, nil
}

// resolveAccount tries the login identifier as a username, then a room
// number, then an email. Only active accounts are eligible, and an email
// shared by more than one active account is rejected outright.
func (s *authService) resolveAccount(ctx context.Context, identifier string) (*model.User, error) {
	user, err := s.repo.User.GetActiveByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup by username failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	user, err = s.repo.User.GetActiveGuestByRoom(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup by room failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	matches, err := s.repo.User.ListActiveByEmail(ctx, identifier)
	if err != nil {
		s.logger.Error("lookup by email failed", zap.Error(err))
		return nil, apperr.Storage(err)
	}
	switch len(matches) {
	case 0:
		return nil, ErrInvalidCredentials
	case 1:
		return &matches[0], nil
	default:
		return nil, ErrAmbiguousEmail
	}
}

func (s *authService) Logout(ctx context.Context, jti string) error {
	if err := s.sessions.Revoke(ctx, jti); err != nil {
		s.logger.Error("revoke session failed", zap.Error(err))
		return apperr.Storage(err)
	}
	return nil
}

func (s *authService) CreateAccount(ctx context.Context, req *dto.CreateAccountRequest) (*dto.UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, apperr.Validation("invalid role %q", req.Role)
	}
	if req.Role == model.RoleGuest && strings.TrimSpace(req.RoomNumber) == "" {
		return nil, apperr.Validation("guest accounts require a room number")
	}

	if req.Role == model.RoleAdmin {
		n, err := s.repo.User.CountActiveByRole(ctx, model.RoleAdmin)
		if err != nil {
			s.logger.Error("count admin accounts failed", zap.Error(err))
			return nil, apperr.Storage(err)
		}
		if n >= int64(s.cfg.Auth.MaxAdminAccounts) {
			return nil, apperr.Conflict("admin account limit reached (%d)", s.cfg.Auth.MaxAdminAccounts)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	user := &model.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		Role:         req.Role,
		RoomNumber:   strings.TrimSpace(req.RoomNumber),
		Department:   req.Department,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("create account failed", zap.Error(err))
		return nil, translateSetupError(err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// translateSetupError turns known schema-mismatch failures on the
// account-bootstrap path into actionable configuration errors instead of
// a generic storage error. This path runs during operational setup, not
// steady-state traffic, so the extra guidance is worth the coupling to
// driver message text.
func translateSetupError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key"):
		return apperr.Conflict("an account with this username already exists")
	case strings.Contains(msg, "does not exist") && strings.Contains(msg, "column"):
		return apperr.Validation("database schema is out of date: run pending migrations and retry")
	case strings.Contains(msg, "does not exist") && strings.Contains(msg, "relation"):
		return apperr.Validation("database schema is missing tables: run migrations before creating accounts")
	default:
		return apperr.Storage(err)
	}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.UserID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		RoomNumber:  u.RoomNumber,
		Department:  u.Department,
	}
}
