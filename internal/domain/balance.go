package domain

import "github.com/shopspring/decimal"

// Balance summarizes a user's funds across deposits, investments and withdrawals
type Balance struct {
	ApprovedDeposits    decimal.Decimal `json:"approved_deposits" db:"approved_deposits"`
	Invested            decimal.Decimal `json:"invested" db:"invested"`
	ProfitAccrued       decimal.Decimal `json:"profit_accrued" db:"profit_accrued"`
	ReturnedPrincipal   decimal.Decimal `json:"returned_principal" db:"returned_principal"`
	CommittedWithdrawal decimal.Decimal `json:"committed_withdrawals" db:"committed_withdrawals"`
}

// Unallocated is what a user may still commit to a new investment. Committed
// withdrawals not covered by profit or returned principal draw it down.
func (b Balance) Unallocated() decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.Min(b.uninvested(), b.Withdrawable()))
}

// Withdrawable is what a user may still request to withdraw
func (b Balance) Withdrawable() decimal.Decimal {
	return b.uninvested().
		Add(b.ProfitAccrued).
		Add(b.ReturnedPrincipal).
		Sub(b.CommittedWithdrawal)
}

func (b Balance) uninvested() decimal.Decimal {
	return b.ApprovedDeposits.Sub(b.Invested)
}

type BalanceResponse struct {
	Balance
	Unallocated  decimal.Decimal `json:"unallocated"`
	Withdrawable decimal.Decimal `json:"withdrawable"`
}

// NewBalanceResponse derives the computed fields of a balance
func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		Balance:      b,
		Unallocated:  b.Unallocated(),
		Withdrawable: b.Withdrawable(),
	}
}
