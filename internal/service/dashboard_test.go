package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

func TestGetDashboardSummary(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, income, expense := seedUser(svc)

	// Six entries so the recent list gets truncated to five.
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	for day := 1; day <= 5; day++ {
		if _, err := svc.CreateTransaction(userID, TransactionInput{
			CategoryID: expense.ID,
			Amount:     decimal.NewFromInt(10),
			Date:       base.AddDate(0, 0, day),
		}); err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}
	if _, err := svc.CreateTransaction(userID, TransactionInput{
		CategoryID: income.ID,
		Amount:     decimal.NewFromInt(1000),
		Date:       base.AddDate(0, 0, 10),
	}); err != nil {
		t.Fatalf("create income: %v", err)
	}
	// An entry outside the current month must not count in the totals.
	if _, err := svc.CreateTransaction(userID, TransactionInput{
		CategoryID: expense.ID,
		Amount:     decimal.NewFromInt(500),
		Date:       time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create old expense: %v", err)
	}

	summary, err := svc.GetDashboardSummary(userID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.TotalBalance.Equal(decimal.NewFromInt(450)) {
		t.Errorf("total balance = %s, want 450", summary.TotalBalance)
	}
	if !summary.ThisMonthIncome.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("month income = %s, want 1000", summary.ThisMonthIncome)
	}
	if !summary.ThisMonthExpenses.Equal(decimal.NewFromInt(50)) {
		t.Errorf("month expenses = %s, want 50 (June entry excluded)", summary.ThisMonthExpenses)
	}
	if len(summary.RecentTransactions) != 5 {
		t.Errorf("recent = %d, want 5", len(summary.RecentTransactions))
	}
	if !summary.RecentTransactions[0].Amount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("most recent amount = %s, want the newest entry", summary.RecentTransactions[0].Amount)
	}
}

func TestGetDashboardSummaryTopThree(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, _, _ := seedUser(svc)

	// Four goals at distinct progress levels.
	targets := []struct {
		name    string
		current int64
	}{
		{"A", 100}, {"B", 900}, {"C", 400}, {"D", 700},
	}
	for _, g := range targets {
		if _, err := svc.CreateGoal(userID, GoalInput{
			Name:          g.name,
			TargetAmount:  decimal.NewFromInt(1000),
			CurrentAmount: decimal.NewFromInt(g.current),
			TargetDate:    time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		}); err != nil {
			t.Fatalf("create goal %s: %v", g.name, err)
		}
	}

	summary, err := svc.GetDashboardSummary(userID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary.Goals) != 3 {
		t.Fatalf("goals = %d, want top 3", len(summary.Goals))
	}
	wantOrder := []string{"B", "D", "C"}
	for i, want := range wantOrder {
		if summary.Goals[i].Name != want {
			t.Errorf("goals[%d] = %q, want %q", i, summary.Goals[i].Name, want)
		}
	}
}

func TestGetTrendSeries(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, income, expense := seedUser(svc)

	// One income in the current month, one expense two months back.
	if _, err := svc.CreateTransaction(userID, TransactionInput{
		CategoryID: income.ID,
		Amount:     decimal.NewFromInt(800),
		Date:       time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create income: %v", err)
	}
	if _, err := svc.CreateTransaction(userID, TransactionInput{
		CategoryID: expense.ID,
		Amount:     decimal.NewFromInt(60),
		Date:       time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	series, err := svc.GetTrendSeries(userID, 6)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(series.Labels) != 6 || len(series.Income) != 6 || len(series.Expenses) != 6 {
		t.Fatalf("series lengths = %d/%d/%d, want 6 each", len(series.Labels), len(series.Income), len(series.Expenses))
	}
	if series.Labels[5] != "August" {
		t.Errorf("last label = %q, want August", series.Labels[5])
	}
	if !series.Income[5].Equal(decimal.NewFromInt(800)) {
		t.Errorf("August income = %s, want 800", series.Income[5])
	}
	if !series.Expenses[3].Equal(decimal.NewFromInt(60)) {
		t.Errorf("June expenses = %s, want 60", series.Expenses[3])
	}
	if !series.Expenses[5].IsZero() {
		t.Errorf("August expenses = %s, want 0", series.Expenses[5])
	}
}

func TestGetPieChartData(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, _, expense := seedUser(svc)

	other, err := svc.CreateCategory(userID, CategoryInput{
		Name:  "Transport",
		Type:  models.TypeExpense,
		Color: "no-such-color",
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	now := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	for _, tr := range []struct {
		categoryID int64
		amount     int64
	}{
		{expense.ID, 30},
		{expense.ID, 70},
		{other.ID, 40},
	} {
		if _, err := svc.CreateTransaction(userID, TransactionInput{
			CategoryID: tr.categoryID,
			Amount:     decimal.NewFromInt(tr.amount),
			Date:       now,
		}); err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}

	slices, err := svc.GetPieChartData(userID)
	if err != nil {
		t.Fatalf("pie: %v", err)
	}
	if len(slices) != 2 {
		t.Fatalf("slices = %d, want 2", len(slices))
	}
	if slices[0].Category != "Groceries" || !slices[0].Total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("largest slice = %+v, want Groceries at 100", slices[0])
	}
	if slices[1].Color != "#000000" {
		t.Errorf("unknown color name = %q, want #000000 fallback", slices[1].Color)
	}
}
