package service

import (
	"agrimarket/internal/errs"
	"agrimarket/internal/model"
	"agrimarket/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type UpdateProfileRequest struct {
	Contact   *string  `json:"contact" binding:"omitempty,max=20"`
	Location  *string  `json:"location" binding:"omitempty,max=150"`
	Language  *string  `json:"language" binding:"omitempty,max=50"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// UserResponse is a User without its password hash.
type UserResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Role      model.Role `json:"role"`
	Contact   string     `json:"contact"`
	Location  string     `json:"location"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Language  string     `json:"language"`
	ProfileID *uint      `json:"profile_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// UserService reads and edits the caller's own account.
type UserService interface {
	GetMe(ctx context.Context, userID uint) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*UserResponse, error)
}

type userService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

// NewUserService returns a new instance of UserService
func NewUserService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) UserService {
	return &userService{users: users, profiles: profiles, auditRepo: auditRepo, txManager: txManager}
}

func mapUser(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Contact:   user.Contact,
		Location:  user.Location,
		Latitude:  user.Latitude,
		Longitude: user.Longitude,
		Language:  user.Language,
		CreatedAt: user.CreatedAt,
	}
}

func (s *userService) withProfile(ctx context.Context, user *model.User) (*UserResponse, error) {
	res := mapUser(user)
	if !user.Role.HasProfile() {
		return res, nil
	}
	p, err := s.profiles.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		res.ProfileID = &p.ID
	case !errors.Is(err, errs.ErrNotFound):
		return nil, err
	}
	return res, nil
}

func (s *userService) GetMe(ctx context.Context, userID uint) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withProfile(ctx, user)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	v := &errs.ValidationError{}
	if req.Contact != nil {
		if len(*req.Contact) > maxContactLen {
			v.Add("contact", fmt.Sprintf("String should have at most %d characters", maxContactLen), "string_too_long")
		}
		user.Contact = *req.Contact
	}
	if req.Location != nil {
		if len(*req.Location) > maxLocationLen {
			v.Add("location", fmt.Sprintf("String should have at most %d characters", maxLocationLen), "string_too_long")
		}
		user.Location = *req.Location
	}
	if req.Language != nil {
		lang := strings.TrimSpace(*req.Language)
		if len(lang) > maxLanguageLen {
			v.Add("language", fmt.Sprintf("String should have at most %d characters", maxLanguageLen), "string_too_long")
		}
		if lang == "" {
			lang = model.DefaultLanguage
		}
		user.Language = lang
	}
	if req.Latitude != nil {
		user.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		user.Longitude = *req.Longitude
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Update(txCtx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if req.Language != nil && user.Role.HasProfile() {
			p, err := s.profiles.GetByUserID(txCtx, user.ID)
			if err != nil && !errors.Is(err, errs.ErrNotFound) {
				return err
			}
			if p != nil {
				p.Language = user.Language
				if err := s.profiles.Update(txCtx, p); err != nil {
					return fmt.Errorf("failed to update profile: %w", err)
				}
			}
		}

		details, _ := json.Marshal(req)
		uid := user.ID
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     &uid,
			Action:     model.ActionUpdateProfile,
			EntityID:   fmt.Sprint(user.ID),
			EntityName: user.Username,
			Details:    string(details),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.withProfile(ctx, user)
}
