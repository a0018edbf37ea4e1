package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
	"financetracker/internal/utils"
)

// DashboardSummary is the dashboard payload: cached balance, current-month
// totals, the latest ledger entries and the top budgets and goals.
type DashboardSummary struct {
	TotalBalance       decimal.Decimal          `json:"total_balance"`
	ThisMonthIncome    decimal.Decimal          `json:"this_month_income"`
	ThisMonthExpenses  decimal.Decimal          `json:"this_month_expenses"`
	RecentTransactions []models.TransactionData `json:"recent_transactions"`
	Budgets            []BudgetStatus           `json:"budgets"`
	Goals              []GoalStatus             `json:"goals"`
}

// GetMonthlyIncomeAndExpenses totals income and expenses for the account
// within the inclusive date range.
func (s *Service) GetMonthlyIncomeAndExpenses(accountID int64, start, end time.Time) (*models.IncomeExpenseStats, error) {
	f := models.TransactionFilter{StartDate: &start, EndDate: &end}
	income, err := s.store.SumByType(accountID, models.TypeIncome, f)
	if err != nil {
		return nil, err
	}
	expense, err := s.store.SumByType(accountID, models.TypeExpense, f)
	if err != nil {
		return nil, err
	}
	return &models.IncomeExpenseStats{
		Income:     income,
		Expense:    expense,
		NetBalance: income.Sub(expense),
	}, nil
}

// GetDashboardSummary assembles the dashboard: balance, this month's
// totals, the five most recent transactions, and the top three budgets and
// goals by progress.
func (s *Service) GetDashboardSummary(userID int64) (*DashboardSummary, error) {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	start, end := utils.CurrentMonthRange(s.now())
	stats, err := s.GetMonthlyIncomeAndExpenses(account.ID, start, end)
	if err != nil {
		return nil, err
	}

	recent, err := s.store.ListTransactions(account.ID, models.TransactionFilter{Limit: 5})
	if err != nil {
		return nil, err
	}

	budgetsOverview, err := s.GetBudgetsOverview(userID)
	if err != nil {
		return nil, err
	}
	budgets := budgetsOverview.Budgets
	sort.SliceStable(budgets, func(i, j int) bool {
		return budgets[i].PercentageUsed > budgets[j].PercentageUsed
	})
	if len(budgets) > 3 {
		budgets = budgets[:3]
	}

	goalsOverview, err := s.GetGoalsOverview(userID)
	if err != nil {
		return nil, err
	}
	goals := goalsOverview.Goals
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].PercentageAchieved > goals[j].PercentageAchieved
	})
	if len(goals) > 3 {
		goals = goals[:3]
	}

	return &DashboardSummary{
		TotalBalance:       account.Balance,
		ThisMonthIncome:    stats.Income,
		ThisMonthExpenses:  stats.Expense,
		RecentTransactions: recent,
		Budgets:            budgets,
		Goals:              goals,
	}, nil
}

// GetTrendSeries produces one income and one expense data point per month
// for the last n months, oldest first.
func (s *Service) GetTrendSeries(userID int64, n int) (*models.TrendSeries, error) {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	series := &models.TrendSeries{}
	for _, w := range utils.LastNMonths(n, s.now()) {
		stats, err := s.GetMonthlyIncomeAndExpenses(account.ID, w.Start, w.End)
		if err != nil {
			return nil, err
		}
		series.Labels = append(series.Labels, w.Label)
		series.Income = append(series.Income, stats.Income)
		series.Expenses = append(series.Expenses, stats.Expense)
	}
	return series, nil
}

// GetPieChartData groups this month's expenses by category, largest first,
// with the stored color names resolved to hex codes.
func (s *Service) GetPieChartData(userID int64) ([]models.PieSlice, error) {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	start, end := utils.CurrentMonthRange(s.now())
	slices, err := s.store.ExpensesByCategory(account.ID, models.TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}

	for i, slice := range slices {
		if hex, ok := models.ColorMap[slice.Color]; ok {
			slices[i].Color = hex
		} else {
			slices[i].Color = "#000000"
		}
	}
	return slices, nil
}
