package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending ceiling for one category. Read-side only: budgets
// never mutate the ledger.
type Budget struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Period      string          `json:"period"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
