package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository/mocks"
	svcmocks "github.com/segyhp/growvest-engine/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func nullLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func adminPrincipal() domain.Principal {
	return domain.Principal{UserID: uuid.New(), Email: "admin@growvest.io", Role: domain.RoleAdmin}
}

func userPrincipal() domain.Principal {
	return domain.Principal{UserID: uuid.New(), Email: "user@growvest.io", Role: domain.RoleUser}
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "access-secret",
			JWTRefreshSecret: "refresh-secret",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  24 * time.Hour,
			BcryptCost:       4,
		},
		Storage: config.StorageConfig{
			MaxUploadBytes: 1024,
		},
		Scheduler: config.SchedulerConfig{
			Timezone: "UTC",
		},
		Business: config.BusinessConfig{
			ReferralRate:   "0.05",
			ProfitLockTTL:  time.Minute,
			LedgerPageSize: 30,
		},
	}
}

// newTestAudit returns an audit service whose log writes and publishes are expected but optional
func newTestAudit() (*AuditService, *mocks.MockAdminLogRepository, *svcmocks.MockPublisher) {
	logRepo := &mocks.MockAdminLogRepository{}
	publisher := &svcmocks.MockPublisher{}

	audit := &AuditService{
		AdminLogRepo: logRepo,
		publisher:    publisher,
		log:          nullLogger(),
		now:          clock,
	}

	return audit, logRepo, publisher
}

func allowAudit(logRepo *mocks.MockAdminLogRepository, publisher *svcmocks.MockPublisher) {
	logRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(event domain.Event) bool {
		return event.Type == eventType
	})
}

func logWithAction(adminID uuid.UUID, action string) interface{} {
	return mock.MatchedBy(func(entry *domain.AdminLog) bool {
		return entry.AdminID == adminID && entry.Action == action
	})
}
