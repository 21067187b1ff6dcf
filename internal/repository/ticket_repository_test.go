package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketRowColumns = []string{"id", "user_id", "subject", "message", "status", "admin_replies", "created_at", "updated_at"}

func TestTicketRepository_AppendReply(t *testing.T) {
	tests := []struct {
		name            string
		status          string
		existing        domain.TicketThread
		expectedStatus  string
		expectedReplies int
	}{
		{
			name:            "first reply opens work on the ticket",
			status:          domain.TicketStatusOpen,
			expectedStatus:  domain.TicketStatusInProgress,
			expectedReplies: 1,
		},
		{
			name:            "later reply keeps thread order",
			status:          domain.TicketStatusInProgress,
			existing:        domain.TicketThread{{AdminID: uuid.New(), Reply: "checking", Timestamp: time.Now().Add(-time.Hour)}},
			expectedStatus:  domain.TicketStatusInProgress,
			expectedReplies: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewTicketRepository(db)

			id := uuid.New()
			existing, err := tt.existing.Value()
			require.NoError(t, err)

			reply := domain.TicketReply{AdminID: uuid.New(), Reply: "resolved on our side", Timestamp: time.Now().UTC()}

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta("FROM support_tickets WHERE id = $1 FOR UPDATE")).
				WithArgs(id).
				WillReturnRows(sqlmock.NewRows(ticketRowColumns).
					AddRow(id.String(), uuid.NewString(), "Deposit missing", "Sent yesterday", tt.status, existing, time.Now(), time.Now()))
			mock.ExpectExec(regexp.QuoteMeta("UPDATE support_tickets")).
				WithArgs(id, sqlmock.AnyArg(), tt.expectedStatus, sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			ticket, err := repo.AppendReply(context.Background(), id, reply)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, ticket.Status)
			require.Len(t, ticket.AdminReplies, tt.expectedReplies)
			assert.Equal(t, reply.Reply, ticket.AdminReplies[tt.expectedReplies-1].Reply)
		})
	}
}

func TestTicketRepository_AppendReply_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTicketRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows(ticketRowColumns))
	mock.ExpectRollback()

	ticket, err := repo.AppendReply(context.Background(), uuid.New(), domain.TicketReply{Reply: "hi"})

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, ticket)
}

func TestTicketRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTicketRepository(db)

	ticket := &domain.SupportTicket{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Subject:   "Withdrawal delay",
		Message:   "Pending for a week",
		Status:    domain.TicketStatusOpen,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO support_tickets")).
		WithArgs(ticket.ID, ticket.UserID, ticket.Subject, ticket.Message, domain.TicketStatusOpen,
			[]byte("[]"), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), ticket))
}

func TestTicketRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTicketRepository(db)

	userID := uuid.New()
	replies, _ := json.Marshal([]domain.TicketReply{{AdminID: uuid.New(), Reply: "on it", Timestamp: time.Now()}})

	mock.ExpectQuery(regexp.QuoteMeta("FROM support_tickets WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(ticketRowColumns).
			AddRow(uuid.NewString(), userID.String(), "a", "b", domain.TicketStatusInProgress, replies, time.Now(), time.Now()))

	tickets, err := repo.List(context.Background(), &userID, "")

	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Len(t, tickets[0].AdminReplies, 1)
}
