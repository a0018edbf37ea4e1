package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds the cached running balance for one user. The balance must
// equal sum(income transactions) - sum(expense transactions) after any
// write path completes.
type Account struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
