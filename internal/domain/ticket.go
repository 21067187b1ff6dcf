package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// SupportTicket holds a user's request and the append-only thread of admin replies
type SupportTicket struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	UserID       uuid.UUID    `json:"user_id" db:"user_id"`
	Subject      string       `json:"subject" db:"subject"`
	Message      string       `json:"message" db:"message"`
	Status       string       `json:"status" db:"status"`
	AdminReplies TicketThread `json:"admin_replies" db:"admin_replies"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

type TicketReply struct {
	AdminID   uuid.UUID `json:"admin_id"`
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketThread is stored as a JSON array column
type TicketThread []TicketReply

// Append adds a reply and applies the open -> in_progress transition
func (t *SupportTicket) Append(reply TicketReply) {
	t.AdminReplies = append(t.AdminReplies, reply)
	if t.Status == TicketStatusOpen {
		t.Status = TicketStatusInProgress
	}
}

func (t TicketThread) Value() (driver.Value, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t)
}

func (t *TicketThread) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*t = TicketThread{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("ticket thread: unsupported type %T", src)
	}

	if len(data) == 0 {
		*t = TicketThread{}
		return nil
	}
	return json.Unmarshal(data, t)
}

type CreateTicketRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type ReplyTicketRequest struct {
	Reply string `json:"reply" validate:"required,max=5000"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=resolved closed"`
}
