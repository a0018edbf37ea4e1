package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows ledger listings and sums. Zero values mean
// "no constraint"; date bounds are inclusive.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID int64
	Type       string
	Limit      int
}

// Transaction represents a single ledger entry. Type is always copied from
// the category at write time, never set independently.
type Transaction struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"account_id"`
	CategoryID  int64           `json:"category_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}
