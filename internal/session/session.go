// Package session defines the session record supplied by persistence
// collaborators and the derived tabular view every analyzer reads.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Record is one recorded play session. ProfitLoss is established by the
// collaborator that created the record (cash_out - buy_in - fees); the
// analytics engine trusts it and never recomputes it.
type Record struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Date       time.Time `json:"date" db:"ts"`
	BuyIn      float64   `json:"buy_in" db:"buy_in"`
	CashOut    float64   `json:"cash_out" db:"cash_out"`
	Fees       float64   `json:"fees" db:"fees"`
	ProfitLoss float64   `json:"profit_loss" db:"profit_loss"`
	NewDeposit float64   `json:"new_deposit" db:"new_deposit"`
	Notes      string    `json:"notes,omitempty" db:"notes"`
}

// NewRecord builds a record from raw amounts, deriving profit_loss.
func NewRecord(date time.Time, buyIn, cashOut, fees float64, notes string) Record {
	return Record{
		ID:         uuid.New(),
		Date:       date,
		BuyIn:      buyIn,
		CashOut:    cashOut,
		Fees:       fees,
		ProfitLoss: cashOut - buyIn - fees,
		NewDeposit: buyIn,
		Notes:      notes,
	}
}

// Table is the ordered columnar view derived from a record sequence.
// Input order is trusted to be chronological; no independent sort is
// performed. A Table is built fresh per analysis call and never mutated.
type Table struct {
	Dates         []time.Time
	BuyIns        []float64
	CashOuts      []float64
	Fees          []float64
	ProfitLoss    []float64
	ROI           []float64 // percent, 0 when buy_in is 0
	CumulativePL  []float64
	SessionNumber []int // 1-based, contiguous
}

// NewTable derives the columnar view from records. An empty input yields
// an empty table; downstream analyzers report insufficient data rather
// than failing.
func NewTable(records []Record) *Table {
	n := len(records)
	t := &Table{
		Dates:         make([]time.Time, n),
		BuyIns:        make([]float64, n),
		CashOuts:      make([]float64, n),
		Fees:          make([]float64, n),
		ProfitLoss:    make([]float64, n),
		ROI:           make([]float64, n),
		CumulativePL:  make([]float64, n),
		SessionNumber: make([]int, n),
	}
	cum := 0.0
	for i, r := range records {
		t.Dates[i] = r.Date
		t.BuyIns[i] = r.BuyIn
		t.CashOuts[i] = r.CashOut
		t.Fees[i] = r.Fees
		t.ProfitLoss[i] = r.ProfitLoss
		if r.BuyIn > 0 {
			t.ROI[i] = r.ProfitLoss / r.BuyIn * 100
		}
		cum += r.ProfitLoss
		t.CumulativePL[i] = cum
		t.SessionNumber[i] = i + 1
	}
	return t
}

// Len reports the number of sessions in the table.
func (t *Table) Len() int {
	return len(t.ProfitLoss)
}

// Empty reports whether the table holds no sessions.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// SessionIndex returns the session numbers as float64 for regression use.
func (t *Table) SessionIndex() []float64 {
	xs := make([]float64, len(t.SessionNumber))
	for i, n := range t.SessionNumber {
		xs[i] = float64(n)
	}
	return xs
}
