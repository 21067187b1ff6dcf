package domain

import (
	"time"

	"github.com/google/uuid"
)

// Admin actions recorded in the audit log
const (
	ActionApproveDeposit     = "deposit.approve"
	ActionRejectDeposit      = "deposit.reject"
	ActionApproveWithdrawal  = "withdrawal.approve"
	ActionRejectWithdrawal   = "withdrawal.reject"
	ActionRunDailyProfit     = "profit.run"
	ActionCancelInvestment   = "investment.cancel"
	ActionCompleteInvestment = "investment.complete"
	ActionUpdateUser         = "user.update"
	ActionReplyTicket        = "ticket.reply"
)

type AdminLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AdminID   uuid.UUID `json:"admin_id" db:"admin_id"`
	Action    string    `json:"action" db:"action"`
	Meta      string    `json:"meta" db:"meta"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
