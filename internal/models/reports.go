package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeExpenseStats represents income and expense totals for a date range
type IncomeExpenseStats struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

// BudgetData is one budget joined with its category and the amount spent on
// that category within the current month.
type BudgetData struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Icon        string          `json:"icon"`
	Color       string          `json:"color"`
	Spent       decimal.Decimal `json:"spent"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// PercentageUsed returns the spent/amount ratio as a whole percentage,
// capped at 100. A zero budget amount yields 0.
func (b BudgetData) PercentageUsed() int {
	return percentage(b.Spent, b.Amount)
}

// Remaining returns the budget amount left to spend. Negative when over budget.
func (b BudgetData) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// IsOverBudget reports whether spending exceeds the budget amount.
func (b BudgetData) IsOverBudget() bool {
	return b.Spent.GreaterThan(b.Amount)
}

// StatusColor returns the display tier for the budget's usage level.
func (b BudgetData) StatusColor() string {
	switch {
	case b.IsOverBudget():
		return "danger"
	case b.PercentageUsed() >= 80:
		return "warning"
	case b.PercentageUsed() >= 60:
		return "success"
	default:
		return "primary"
	}
}

// BudgetAlert is a user-facing warning derived from budget usage
type BudgetAlert struct {
	Type    string `json:"type"`
	Icon    string `json:"icon"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// CategorySummary is one category with its all-time transaction count and total
type CategorySummary struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Type              string          `json:"type"`
	Icon              string          `json:"icon"`
	Color             string          `json:"color"`
	TotalTransactions int             `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}

// GoalData is the read-side projection of a goal
type GoalData struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    time.Time       `json:"target_date"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
}

// PercentageAchieved returns saved/target as a whole percentage, capped at
// 100. A zero target yields 0.
func (g GoalData) PercentageAchieved() int {
	return percentage(g.CurrentAmount, g.TargetAmount)
}

// TimeLeft returns the number of whole days until the target date, negative
// when the goal is overdue. Surfaced as-is, never clamped.
func (g GoalData) TimeLeft(today time.Time) int {
	y1, m1, d1 := today.Date()
	y2, m2, d2 := g.TargetDate.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// TransactionData is one ledger entry joined with its category display fields
type TransactionData struct {
	ID            int64           `json:"id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryIcon  string          `json:"category_icon"`
	CategoryColor string          `json:"category_color"`
}

// TrendSeries holds one data point per month for income and expenses,
// oldest month first.
type TrendSeries struct {
	Labels   []string          `json:"labels"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// PieSlice is one category's expense total within a date range
type PieSlice struct {
	Category string          `json:"category"`
	Color    string          `json:"color"` // hex code
	Total    decimal.Decimal `json:"total"`
}

// GoalChartSeries is one goal's reconstructed monthly progress line
type GoalChartSeries struct {
	Label string            `json:"label"`
	Color string            `json:"color"` // hex code
	Data  []decimal.Decimal `json:"data"`
}

// GoalChartData is the 12-month goal progress chart payload
type GoalChartData struct {
	Labels   []string          `json:"labels"`
	Datasets []GoalChartSeries `json:"datasets"`
}

// percentage computes part/whole as a whole number capped at 100, guarding
// division by zero.
func percentage(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	p := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if p > 100 {
		return 100
	}
	return int(p)
}
