package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrimarket/internal/errs"
	"agrimarket/internal/limiter"
	"agrimarket/internal/model"
	"agrimarket/internal/queue"
	"agrimarket/internal/repository"
	"agrimarket/internal/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Field limits shared by request binding and service validation.
const (
	maxUsernameLen = 100
	maxPasswordLen = 72 // bcrypt input limit in bytes
	maxContactLen  = 20
	maxLocationLen = 150
	maxLanguageLen = 50
)

type RegisterRequest struct {
	Username  string   `json:"username" binding:"required,max=100"`
	Password  string   `json:"password" binding:"required,max=72"`
	Role      string   `json:"role" binding:"required"`
	Contact   string   `json:"contact" binding:"max=20"`
	Location  string   `json:"location" binding:"max=150"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Language  string   `json:"language" binding:"max=50"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string     `json:"access_token"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    int64      `json:"expires_in"`
	ExpiresAt    time.Time  `json:"expires_at"`
	RefreshToken string     `json:"refresh_token"`
	Role         model.Role `json:"role"`
	Username     string     `json:"username"`
	UserID       uint       `json:"user_id"`
}

// AuthConfig holds the tunables of AuthService.
type AuthConfig struct {
	BcryptCost int
	RefreshTTL time.Duration
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService interface {
	// Register validates required fields, then the role, then username
	// uniqueness, in that order.
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	// Login returns errs.ErrInvalidCredentials for both an unknown user and
	// a wrong password.
	Login(ctx context.Context, req LoginRequest, clientIP string) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, claims *token.Claims, refreshToken string) error
}

type authService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	refreshes repository.RefreshTokenRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	tokens    *token.Manager
	denylist  token.Denylist
	lim       limiter.Limiter
	events    queue.Publisher
	cfg       AuthConfig
	log       *zap.Logger

	// dummyHash is compared against when the user does not exist so both
	// failure paths pay one bcrypt comparison.
	dummyHash []byte
}

func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	refreshes repository.RefreshTokenRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	tokens *token.Manager,
	denylist token.Denylist,
	lim limiter.Limiter,
	events queue.Publisher,
	cfg AuthConfig,
	log *zap.Logger,
) (AuthService, error) {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("agrimarket-timing-equalizer"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("init dummy hash: %w", err)
	}
	if lim == nil {
		lim = limiter.Nop{}
	}
	if denylist == nil {
		denylist = token.NopDenylist{}
	}
	return &authService{
		users:     users,
		profiles:  profiles,
		refreshes: refreshes,
		auditRepo: auditRepo,
		txManager: txManager,
		tokens:    tokens,
		denylist:  denylist,
		lim:       lim,
		events:    events,
		cfg:       cfg,
		log:       log,
		dummyHash: dummy,
	}, nil
}

func validateRegister(req RegisterRequest) error {
	v := &errs.ValidationError{}
	if strings.TrimSpace(req.Username) == "" {
		v.Add("username", "Field required", "missing")
	} else if len(req.Username) > maxUsernameLen {
		v.Add("username", fmt.Sprintf("String should have at most %d characters", maxUsernameLen), "string_too_long")
	}
	if req.Password == "" {
		v.Add("password", "Field required", "missing")
	} else if len(req.Password) > maxPasswordLen {
		v.Add("password", fmt.Sprintf("String should have at most %d characters", maxPasswordLen), "string_too_long")
	}
	if strings.TrimSpace(req.Role) == "" {
		v.Add("role", "Field required", "missing")
	}
	if len(req.Contact) > maxContactLen {
		v.Add("contact", fmt.Sprintf("String should have at most %d characters", maxContactLen), "string_too_long")
	}
	if len(req.Location) > maxLocationLen {
		v.Add("location", fmt.Sprintf("String should have at most %d characters", maxLocationLen), "string_too_long")
	}
	if len(req.Language) > maxLanguageLen {
		v.Add("language", fmt.Sprintf("String should have at most %d characters", maxLanguageLen), "string_too_long")
	}
	return v.OrNil()
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: must be one of %s", errs.ErrInvalidRole, model.RoleNames())
	}

	// fast path; the unique index in Create is what actually guarantees it
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, errs.ErrDuplicateUsername
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = model.DefaultLanguage
	}
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Contact:      req.Contact,
		Location:     req.Location,
		Language:     language,
	}
	if req.Latitude != nil {
		user.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		user.Longitude = *req.Longitude
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}
		if role.HasProfile() {
			if err := s.profiles.Create(txCtx, &model.Profile{UserID: user.ID, Role: role, Language: language}); err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}
		}

		details, _ := json.Marshal(map[string]any{"role": role, "location": user.Location})
		uid := user.ID
		if err := s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     &uid,
			Action:     model.ActionRegisterUser,
			EntityID:   fmt.Sprint(user.ID),
			EntityName: user.Username,
			Details:    string(details),
		}); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrDuplicateUsername) {
			return nil, errs.ErrDuplicateUsername
		}
		return nil, err
	}

	publishEvent(ctx, s.events, s.log, queue.UserRegisteredQueue, queue.UserRegisteredEvent{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         string(user.Role),
		RegisteredAt: user.CreatedAt,
	})
	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", string(role)))

	return mapUser(user), nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest, clientIP string) (*TokenResponse, error) {
	v := &errs.ValidationError{}
	if req.Username == "" {
		v.Add("username", "Field required", "missing")
	}
	if req.Password == "" {
		v.Add("password", "Field required", "missing")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	ipHash := limiter.HashIP(clientIP)
	allowed, retry, err := s.lim.Allow(ctx, req.Username, ipHash)
	if err != nil {
		// fail open: a limiter outage must not lock everyone out
		s.log.Warn("login limiter unavailable", zap.Error(err))
	} else if !allowed {
		return nil, &errs.RateLimitError{RetryAfter: retry}
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, s.loginFailed(ctx, req.Username, ipHash)
	case err != nil:
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, s.loginFailed(ctx, req.Username, ipHash)
	}

	if err := s.lim.Success(ctx, req.Username, ipHash); err != nil {
		s.log.Warn("login limiter reset failed", zap.Error(err))
	}
	return s.issueTokens(ctx, user)
}

// loginFailed records the attempt and returns the one credentials error.
func (s *authService) loginFailed(ctx context.Context, username string, ipHash []byte) error {
	if _, _, err := s.lim.Failure(ctx, username, ipHash); err != nil {
		s.log.Warn("login limiter record failed", zap.Error(err))
	}
	return errs.ErrInvalidCredentials
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	access, claims, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	plain, hash, err := token.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.refreshes.Create(ctx, &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  access,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.tokens.TTL().Seconds()),
		ExpiresAt:    claims.ExpiresAt.Time,
		RefreshToken: plain,
		Role:         user.Role,
		Username:     user.Username,
		UserID:       user.ID,
	}, nil
}

// errRefreshReused marks a refresh token presented after it was rotated.
var errRefreshReused = fmt.Errorf("%w: refresh token already used", errs.ErrUnauthorized)

// Refresh rotates a refresh token. Each token is redeemable once; presenting
// a revoked token again revokes every refresh token of its user.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, errs.ErrUnauthorized
	}
	stored, err := s.refreshes.FindByHash(ctx, token.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", errs.ErrUnauthorized)
		}
		return nil, err
	}
	if stored.RevokedAt != nil {
		s.revokeFamily(ctx, stored.UserID)
		return nil, errRefreshReused
	}
	if !stored.Active(time.Now()) {
		return nil, fmt.Errorf("%w: refresh token expired", errs.ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", errs.ErrUnauthorized)
		}
		return nil, err
	}

	var res *TokenResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		revoked, err := s.refreshes.Revoke(txCtx, stored.ID)
		if err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
		if !revoked {
			return errRefreshReused
		}
		res, err = s.issueTokens(txCtx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, errRefreshReused) {
			s.revokeFamily(ctx, stored.UserID)
		}
		return nil, err
	}
	return res, nil
}

func (s *authService) revokeFamily(ctx context.Context, userID uint) {
	s.log.Warn("refresh token reuse, revoking all sessions", zap.Uint("user_id", userID))
	if err := s.refreshes.RevokeAllForUser(ctx, userID); err != nil {
		s.log.Error("revoke refresh tokens failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

func (s *authService) Logout(ctx context.Context, claims *token.Claims, refreshToken string) error {
	if claims != nil && claims.ID != "" && claims.ExpiresAt != nil {
		if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			s.log.Warn("access token revoke failed", zap.Error(err))
		}
	}
	if refreshToken == "" {
		return nil
	}
	stored, err := s.refreshes.FindByHash(ctx, token.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}
	if claims != nil && stored.UserID != claims.UserID {
		return nil
	}
	_, err = s.refreshes.Revoke(ctx, stored.ID)
	return err
}
