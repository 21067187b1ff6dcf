package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/events"
	"github.com/segyhp/growvest-engine/internal/repository"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultAdminLogLimit = 100

// AuditService records admin actions and announces committed changes.
// Both happen after the change is durable, so failures are logged and never undo it.
type AuditService struct {
	AdminLogRepo repository.AdminLogRepository
	publisher    events.Publisher
	log          logrus.FieldLogger
	now          func() time.Time
}

func NewAuditService(adminLogRepo repository.AdminLogRepository, publisher events.Publisher, log logrus.FieldLogger) *AuditService {
	return &AuditService{
		AdminLogRepo: adminLogRepo,
		publisher:    publisher,
		log:          log,
		now:          time.Now,
	}
}

// Record writes an admin log entry with meta encoded as JSON
func (s *AuditService) Record(ctx context.Context, adminID uuid.UUID, action string, meta map[string]interface{}) {
	encoded, err := json.Marshal(meta)
	if err != nil {
		s.log.WithError(err).WithField("action", action).Error("failed to encode admin log meta")
		encoded = []byte("{}")
	}

	entry := &domain.AdminLog{
		ID:        uuid.New(),
		AdminID:   adminID,
		Action:    action,
		Meta:      string(encoded),
		CreatedAt: s.now(),
	}

	if err := s.AdminLogRepo.Create(ctx, entry); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"admin_id": adminID,
			"action":   action,
		}).Error("failed to write admin log")
	}
}

// Publish announces an event
func (s *AuditService) Publish(ctx context.Context, eventType string, payload map[string]interface{}) {
	if err := s.publisher.Publish(ctx, domain.NewEvent(eventType, payload)); err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("failed to publish event")
	}
}

// List returns recent admin log entries
func (s *AuditService) List(ctx context.Context, principal domain.Principal, limit int) ([]*domain.AdminLog, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can read the admin log")
	}
	if limit <= 0 || limit > defaultAdminLogLimit {
		limit = defaultAdminLogLimit
	}

	logs, err := s.AdminLogRepo.List(ctx, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return logs, nil
}
