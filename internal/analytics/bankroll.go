package analytics

import (
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

// BankrollSummary aggregates lifetime bankroll totals. Deposits are the
// actual new money put in: a continuation session (buy-in carried over
// from the previous cash-out) contributes nothing.
type BankrollSummary struct {
	TotalSessions   int     `json:"total_sessions"`
	TotalDeposits   float64 `json:"total_deposits"`
	TotalCashOuts   float64 `json:"total_cash_outs"`
	TotalFees       float64 `json:"total_fees"`
	TotalProfitLoss float64 `json:"total_profit_loss"`
	CurrentBankroll float64 `json:"current_bankroll"`
	AverageSession  float64 `json:"average_session"`
}

// Bankroll computes lifetime totals from the raw record sequence. Unlike
// the per-session analyzers it reads the records directly because it
// needs the deposit field the table does not carry.
func Bankroll(records []session.Record) BankrollSummary {
	if len(records) == 0 {
		return BankrollSummary{}
	}

	var s BankrollSummary
	s.TotalSessions = len(records)
	sumPL := 0.0
	for _, r := range records {
		s.TotalDeposits += r.NewDeposit
		s.TotalFees += r.Fees
		sumPL += r.ProfitLoss
	}
	s.CurrentBankroll = records[len(records)-1].CashOut
	s.TotalCashOuts = s.CurrentBankroll
	s.TotalProfitLoss = s.CurrentBankroll - s.TotalDeposits - s.TotalFees
	s.AverageSession = sumPL / float64(len(records))
	return s
}
