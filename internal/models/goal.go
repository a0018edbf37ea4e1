package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal tracks savings progress towards a target amount. Achieved is
// monotonic: once true it never reverts, and AchievedAt is stamped exactly
// once, at the first save where CurrentAmount >= TargetAmount.
type Goal struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	StartDate     time.Time       `json:"start_date"`
	TargetDate    time.Time       `json:"target_date"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
	Achieved      bool            `json:"achieved"`
	AchievedAt    *time.Time      `json:"achieved_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// GoalHistory is an append-only snapshot of a goal's current amount, written
// once per goal save. It is the only audit trail of progress over time.
type GoalHistory struct {
	ID     int64           `json:"id"`
	GoalID int64           `json:"goal_id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}
