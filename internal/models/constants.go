package models

// Transaction and category types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Budget periods. Only monthly budgets are computed against for now.
const (
	PeriodWeekly    = "weekly"
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

// User interface themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ColorMap translates category/goal color names to hex codes for charts.
var ColorMap = map[string]string{
	"primary":   "#0d6efd",
	"success":   "#198754",
	"danger":    "#dc3545",
	"warning":   "#ffc107",
	"info":      "#0dcaf0",
	"secondary": "#6c757d",
}

// QuickAddAmounts are the preset amounts accepted by the goal quick-add endpoint.
var QuickAddAmounts = []int64{10, 25, 50, 100}

// ValidType reports whether t is a known transaction type.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// ValidPeriod reports whether p is a known budget period.
func ValidPeriod(p string) bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}
