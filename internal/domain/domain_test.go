package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipal_CanAccess(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	user := Principal{UserID: owner, Role: RoleUser}
	stranger := Principal{UserID: other, Role: RoleUser}
	admin := Principal{UserID: other, Role: RoleAdmin}

	assert.True(t, user.CanAccess(owner))
	assert.False(t, stranger.CanAccess(owner))
	assert.True(t, admin.CanAccess(owner))
	assert.False(t, user.IsAdmin())
	assert.True(t, admin.IsAdmin())
}

func TestSupportTicket_Append(t *testing.T) {
	tests := []struct {
		name           string
		initialStatus  string
		expectedStatus string
	}{
		{name: "first reply moves open to in progress", initialStatus: TicketStatusOpen, expectedStatus: TicketStatusInProgress},
		{name: "in progress stays in progress", initialStatus: TicketStatusInProgress, expectedStatus: TicketStatusInProgress},
		{name: "resolved stays resolved", initialStatus: TicketStatusResolved, expectedStatus: TicketStatusResolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &SupportTicket{Status: tt.initialStatus}
			ticket.Append(TicketReply{AdminID: uuid.New(), Reply: "looking into it", Timestamp: time.Now()})

			assert.Equal(t, tt.expectedStatus, ticket.Status)
			assert.Len(t, ticket.AdminReplies, 1)
		})
	}
}

func TestSupportTicket_AppendKeepsOrder(t *testing.T) {
	ticket := &SupportTicket{Status: TicketStatusOpen}
	ticket.Append(TicketReply{Reply: "first"})
	ticket.Append(TicketReply{Reply: "second"})

	require.Len(t, ticket.AdminReplies, 2)
	assert.Equal(t, "first", ticket.AdminReplies[0].Reply)
	assert.Equal(t, "second", ticket.AdminReplies[1].Reply)
}

func TestTicketThread_ValueAndScan(t *testing.T) {
	adminID := uuid.New()
	ts := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	thread := TicketThread{{AdminID: adminID, Reply: "hello", Timestamp: ts}}

	value, err := thread.Value()
	require.NoError(t, err)

	var scanned TicketThread
	require.NoError(t, scanned.Scan(value))
	require.Len(t, scanned, 1)
	assert.Equal(t, adminID, scanned[0].AdminID)
	assert.Equal(t, "hello", scanned[0].Reply)
	assert.True(t, ts.Equal(scanned[0].Timestamp))
}

func TestTicketThread_ScanEmpty(t *testing.T) {
	for _, src := range []interface{}{nil, []byte{}, ""} {
		var thread TicketThread
		require.NoError(t, thread.Scan(src))
		assert.Empty(t, thread)
	}

	var thread TicketThread
	assert.Error(t, thread.Scan(42))

	nilValue, err := TicketThread(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), nilValue)
}

func TestBalance(t *testing.T) {
	b := Balance{
		ApprovedDeposits:    decimal.NewFromInt(1000),
		Invested:            decimal.NewFromInt(600),
		ProfitAccrued:       decimal.RequireFromString("45.50"),
		ReturnedPrincipal:   decimal.NewFromInt(100),
		CommittedWithdrawal: decimal.NewFromInt(200),
	}

	// 54.50 of the withdrawals is not covered by profit or returned principal
	assert.True(t, b.Unallocated().Equal(decimal.RequireFromString("345.50")))
	assert.True(t, b.Withdrawable().Equal(decimal.RequireFromString("345.50")))

	resp := NewBalanceResponse(b)
	assert.True(t, resp.Unallocated.Equal(decimal.RequireFromString("345.50")))
	assert.True(t, resp.Withdrawable.Equal(decimal.RequireFromString("345.50")))
}

func TestBalance_FundsCommittedOnce(t *testing.T) {
	tests := []struct {
		name                string
		balance             Balance
		expectedUnallocated string
	}{
		{
			name:                "no withdrawals",
			balance:             Balance{ApprovedDeposits: decimal.NewFromInt(1000), Invested: decimal.NewFromInt(300)},
			expectedUnallocated: "700",
		},
		{
			name:                "whole deposit withdrawn",
			balance:             Balance{ApprovedDeposits: decimal.NewFromInt(1000), CommittedWithdrawal: decimal.NewFromInt(1000)},
			expectedUnallocated: "0",
		},
		{
			name: "withdrawal covered by profit",
			balance: Balance{
				ApprovedDeposits:    decimal.NewFromInt(1000),
				Invested:            decimal.NewFromInt(500),
				ProfitAccrued:       decimal.NewFromInt(80),
				CommittedWithdrawal: decimal.NewFromInt(80),
			},
			expectedUnallocated: "500",
		},
		{
			name: "overdrawn balance floors at zero",
			balance: Balance{
				ApprovedDeposits:    decimal.NewFromInt(1000),
				Invested:            decimal.NewFromInt(1000),
				CommittedWithdrawal: decimal.NewFromInt(1000),
			},
			expectedUnallocated: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.balance
			unallocated := b.Unallocated()
			assert.True(t, unallocated.Equal(decimal.RequireFromString(tt.expectedUnallocated)), "unallocated %s", unallocated)

			// Investing everything left must never push withdrawable below zero
			if b.Withdrawable().IsNegative() {
				return
			}
			b.Invested = b.Invested.Add(unallocated)
			assert.False(t, b.Withdrawable().IsNegative(), "withdrawable %s", b.Withdrawable())
		})
	}
}

func TestNewEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewEvent(EventDepositApproved, map[string]interface{}{"deposit_id": "d1"})

	assert.Equal(t, EventDepositApproved, event.Type)
	assert.False(t, event.OccurredAt.Before(before))
	assert.Equal(t, "d1", event.Payload["deposit_id"])
}
