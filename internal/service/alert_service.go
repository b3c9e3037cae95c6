package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agrimarket/internal/errs"
	"agrimarket/internal/model"
	"agrimarket/internal/queue"
	"agrimarket/internal/repository"

	"go.uber.org/zap"
)

const (
	DefaultAlertLimit = 50
	MaxAlertLimit     = 200

	// EventAlert is the websocket event name for a new alert.
	EventAlert = "alert"
)

type AlertService interface {
	Create(ctx context.Context, userID uint, message, severity string) (*model.Alert, error)
	List(ctx context.Context, userID uint, unseenOnly bool, limit int) ([]model.Alert, error)
	MarkSeen(ctx context.Context, userID, id uint) error

	// HandleLowStock and HandleUserRegistered consume queue events.
	HandleLowStock(ctx context.Context, body []byte) error
	HandleUserRegistered(ctx context.Context, body []byte) error
}

type alertService struct {
	alertRepo repository.AlertRepository
	notifier  Notifier
	log       *zap.Logger
}

// NewAlertService persists alerts and pushes each one to notifier, which may be nil.
func NewAlertService(alertRepo repository.AlertRepository, notifier Notifier, log *zap.Logger) AlertService {
	return &alertService{alertRepo: alertRepo, notifier: notifier, log: log}
}

func validSeverity(s string) bool {
	switch s {
	case model.SeverityCritical, model.SeverityWarning, model.SeverityInfo:
		return true
	}
	return false
}

func (s *alertService) Create(ctx context.Context, userID uint, message, severity string) (*model.Alert, error) {
	v := &errs.ValidationError{}
	message = strings.TrimSpace(message)
	if message == "" {
		v.Add("message", "Field required", "missing")
	}
	if severity == "" {
		severity = model.SeverityInfo
	}
	if !validSeverity(severity) {
		v.Add("severity", "Input should be 'critical', 'warning' or 'info'", "enum")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	alert := &model.Alert{UserID: userID, Message: message, Severity: severity}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Notify(userID, EventAlert, alert)
	}
	return alert, nil
}

func (s *alertService) List(ctx context.Context, userID uint, unseenOnly bool, limit int) ([]model.Alert, error) {
	if limit <= 0 {
		limit = DefaultAlertLimit
	}
	if limit > MaxAlertLimit {
		limit = MaxAlertLimit
	}
	return s.alertRepo.ListByUser(ctx, userID, unseenOnly, limit)
}

func (s *alertService) MarkSeen(ctx context.Context, userID, id uint) error {
	return s.alertRepo.MarkSeen(ctx, userID, id)
}

func (s *alertService) HandleLowStock(ctx context.Context, body []byte) error {
	var ev queue.LowStockEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode low stock event: %w", err)
	}
	severity := model.SeverityWarning
	if ev.Quantity == 0 {
		severity = model.SeverityCritical
	}
	msg := fmt.Sprintf("Low stock: %s has %d left", ev.Name, ev.Quantity)
	_, err := s.Create(ctx, ev.UserID, msg, severity)
	return err
}

func (s *alertService) HandleUserRegistered(ctx context.Context, body []byte) error {
	var ev queue.UserRegisteredEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode registration event: %w", err)
	}
	s.log.Info("user registered", zap.Uint("user_id", ev.UserID), zap.String("role", ev.Role))
	msg := fmt.Sprintf("Welcome %s! Your %s account is ready.", ev.Username, strings.ReplaceAll(ev.Role, "_", " "))
	_, err := s.Create(ctx, ev.UserID, msg, model.SeverityInfo)
	return err
}
