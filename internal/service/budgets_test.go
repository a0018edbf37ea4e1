package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

func budgetData(name string, spent, amount int64) models.BudgetData {
	return models.BudgetData{
		Name:   name,
		Spent:  decimal.NewFromInt(spent),
		Amount: decimal.NewFromInt(amount),
	}
}

func TestBuildBudgetAlerts(t *testing.T) {
	tests := []struct {
		name      string
		budgets   []models.BudgetData
		wantTypes []string
	}{
		{
			name:      "no budgets",
			budgets:   nil,
			wantTypes: []string{},
		},
		{
			name: "dangers sort before warnings and info",
			budgets: []models.BudgetData{
				budgetData("Groceries", 50, 100),  // info
				budgetData("Transport", 90, 100),  // warning
				budgetData("Rent", 150, 100),      // danger
			},
			wantTypes: []string{"danger", "warning", "info"},
		},
		{
			name: "capped at four",
			budgets: []models.BudgetData{
				budgetData("A", 10, 100),
				budgetData("B", 20, 100),
				budgetData("C", 30, 100),
				budgetData("D", 40, 100),
				budgetData("E", 200, 100),
			},
			wantTypes: []string{"danger", "info", "info", "info"},
		},
		{
			name: "boundary at eighty percent",
			budgets: []models.BudgetData{
				budgetData("AtLimit", 80, 100),
				budgetData("Below", 79, 100),
				budgetData("Exact", 100, 100),
			},
			wantTypes: []string{"warning", "warning", "info"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := BuildBudgetAlerts(tt.budgets)
			if len(alerts) != len(tt.wantTypes) {
				t.Fatalf("alerts = %d, want %d", len(alerts), len(tt.wantTypes))
			}
			for i, want := range tt.wantTypes {
				if alerts[i].Type != want {
					t.Errorf("alerts[%d].Type = %q, want %q", i, alerts[i].Type, want)
				}
			}
		})
	}
}

func TestBudgetStatusTiers(t *testing.T) {
	tests := []struct {
		spent, amount int64
		wantColor     string
		wantOver      bool
	}{
		{150, 100, "danger", true},
		{101, 100, "danger", true},
		{100, 100, "warning", false}, // exactly spent is not over
		{80, 100, "warning", false},
		{60, 100, "success", false},
		{59, 100, "primary", false},
		{0, 100, "primary", false},
	}
	for _, tt := range tests {
		b := budgetData("x", tt.spent, tt.amount)
		if got := b.StatusColor(); got != tt.wantColor {
			t.Errorf("StatusColor(%d/%d) = %q, want %q", tt.spent, tt.amount, got, tt.wantColor)
		}
		if got := b.IsOverBudget(); got != tt.wantOver {
			t.Errorf("IsOverBudget(%d/%d) = %v, want %v", tt.spent, tt.amount, got, tt.wantOver)
		}
	}
}

func TestGetBudgetsOverviewCountsCurrentMonthOnly(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, _, expense := seedUser(svc)

	if _, err := svc.CreateBudget(userID, BudgetInput{
		CategoryID: expense.ID,
		Amount:     decimal.NewFromInt(200),
	}); err != nil {
		t.Fatalf("create budget: %v", err)
	}

	// One expense inside the pinned test month, one the month before.
	if _, err := svc.CreateTransaction(userID, TransactionInput{
		CategoryID: expense.ID,
		Amount:     decimal.NewFromInt(120),
		Date:       time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create current-month expense: %v", err)
	}
	if _, err := svc.CreateTransaction(userID, TransactionInput{
		CategoryID: expense.ID,
		Amount:     decimal.NewFromInt(90),
		Date:       time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create prior-month expense: %v", err)
	}

	overview, err := svc.GetBudgetsOverview(userID)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.Budgets) != 1 {
		t.Fatalf("budgets = %d, want 1", len(overview.Budgets))
	}
	status := overview.Budgets[0]
	if !status.Spent.Equal(decimal.NewFromInt(120)) {
		t.Errorf("spent = %s, want 120 (prior month excluded)", status.Spent)
	}
	if status.PercentageUsed != 60 {
		t.Errorf("percentage used = %d, want 60", status.PercentageUsed)
	}
	if !status.Remaining.Equal(decimal.NewFromInt(80)) {
		t.Errorf("remaining = %s, want 80", status.Remaining)
	}
	if status.StatusColor != "success" {
		t.Errorf("status color = %q, want success", status.StatusColor)
	}
	if !overview.TotalSpent.Equal(decimal.NewFromInt(120)) {
		t.Errorf("total spent = %s, want 120", overview.TotalSpent)
	}
}

func TestBudgetInputValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, _, expense := seedUser(svc)

	if _, err := svc.CreateBudget(userID, BudgetInput{Amount: decimal.NewFromInt(100)}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("missing category err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateBudget(userID, BudgetInput{CategoryID: expense.ID}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("zero amount err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateBudget(userID, BudgetInput{
		CategoryID: expense.ID,
		Amount:     decimal.NewFromInt(100),
		Period:     "fortnightly",
	}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("unknown period err = %v, want ErrValidation", err)
	}

	budget, err := svc.CreateBudget(userID, BudgetInput{
		CategoryID: expense.ID,
		Amount:     decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if budget.Period != models.PeriodMonthly {
		t.Errorf("default period = %q, want %q", budget.Period, models.PeriodMonthly)
	}
}

func TestNotifyOverBudget(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, _, expense := seedUser(svc)

	mailer := &recordingMailer{}
	svc.mailer = mailer

	if _, err := svc.CreateBudget(userID, BudgetInput{
		CategoryID: expense.ID,
		Amount:     decimal.NewFromInt(100),
	}); err != nil {
		t.Fatalf("create budget: %v", err)
	}

	// Under budget: nothing should be sent.
	if err := svc.NotifyOverBudget(userID); err != nil {
		t.Fatalf("notify under budget: %v", err)
	}
	if mailer.sends != 0 {
		t.Fatalf("sends while under budget = %d, want 0", mailer.sends)
	}

	if _, err := svc.CreateTransaction(userID, TransactionInput{
		CategoryID: expense.ID,
		Amount:     decimal.NewFromInt(150),
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}
	if err := svc.NotifyOverBudget(userID); err != nil {
		t.Fatalf("notify over budget: %v", err)
	}
	if mailer.sends != 1 {
		t.Fatalf("sends while over budget = %d, want 1", mailer.sends)
	}
	if mailer.lastTo != "alice@example.com" {
		t.Errorf("recipient = %q, want alice@example.com", mailer.lastTo)
	}
	if len(mailer.lastAlerts) == 0 || mailer.lastAlerts[0].Type != "danger" {
		t.Errorf("first alert should be the danger entry, got %+v", mailer.lastAlerts)
	}

	// A nil mailer downgrades notification to a no-op.
	svc.mailer = nil
	if err := svc.NotifyOverBudget(userID); err != nil {
		t.Errorf("notify with nil mailer: %v", err)
	}
}

type recordingMailer struct {
	sends      int
	lastTo     string
	lastAlerts []models.BudgetAlert
}

func (m *recordingMailer) SendBudgetAlerts(to, username string, alerts []models.BudgetAlert) error {
	m.sends++
	m.lastTo = to
	m.lastAlerts = alerts
	return nil
}
