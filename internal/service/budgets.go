package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
	"financetracker/internal/utils"
)

// BudgetInput carries the user-supplied fields for a budget write
type BudgetInput struct {
	CategoryID  int64
	Amount      decimal.Decimal
	Period      string
	Description string
}

// BudgetsOverview is the budgets page payload: every budget with its
// current-month spend, page totals and the alert list.
type BudgetsOverview struct {
	Budgets      []BudgetStatus       `json:"budgets"`
	TotalBudget  decimal.Decimal      `json:"total_budget"`
	TotalSpent   decimal.Decimal      `json:"total_spent"`
	OverBudget   decimal.Decimal      `json:"over_budget"`
	TotalBudgets int                  `json:"total_budgets"`
	Alerts       []models.BudgetAlert `json:"alerts"`
}

// BudgetStatus flattens BudgetData's computed fields for serialization
type BudgetStatus struct {
	models.BudgetData
	PercentageUsed int             `json:"percentage_used"`
	Remaining      decimal.Decimal `json:"remaining"`
	IsOverBudget   bool            `json:"is_over_budget"`
	StatusColor    string          `json:"status_color"`
}

func (s *Service) validateBudgetInput(userID int64, in *BudgetInput) (*models.Category, error) {
	if in.CategoryID == 0 {
		return nil, fmt.Errorf("category is required: %w", models.ErrValidation)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than 0: %w", models.ErrValidation)
	}
	if in.Period == "" {
		// Only monthly budgets are computed against for now.
		in.Period = models.PeriodMonthly
	}
	if !models.ValidPeriod(in.Period) {
		return nil, fmt.Errorf("unknown period %q: %w", in.Period, models.ErrValidation)
	}
	return s.store.FindCategoryByID(in.CategoryID, userID)
}

// CreateBudget creates a spending ceiling on one of the user's categories
func (s *Service) CreateBudget(userID int64, in BudgetInput) (*models.Budget, error) {
	category, err := s.validateBudgetInput(userID, &in)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:      userID,
		CategoryID:  category.ID,
		Amount:      in.Amount,
		Period:      in.Period,
		Description: in.Description,
	}
	if err := s.store.CreateBudget(budget); err != nil {
		return nil, err
	}

	s.log.Infof("Budget %d created for category %q", budget.ID, category.Name)
	return budget, nil
}

// UpdateBudget rewrites an existing budget
func (s *Service) UpdateBudget(userID, budgetID int64, in BudgetInput) (*models.Budget, error) {
	budget, err := s.store.FindBudgetByID(budgetID, userID)
	if err != nil {
		return nil, err
	}
	category, err := s.validateBudgetInput(userID, &in)
	if err != nil {
		return nil, err
	}

	budget.CategoryID = category.ID
	budget.Amount = in.Amount
	budget.Period = in.Period
	budget.Description = in.Description
	if err := s.store.UpdateBudget(budget); err != nil {
		return nil, err
	}

	s.log.Infof("Budget %d updated", budget.ID)
	return budget, nil
}

// DeleteBudget removes a budget. Budgets are read-side only, so no balance
// work is needed.
func (s *Service) DeleteBudget(userID, budgetID int64) error {
	if err := s.store.DeleteBudget(budgetID, userID); err != nil {
		return err
	}
	s.log.Infof("Budget %d deleted", budgetID)
	return nil
}

// GetBudgetsData returns every budget with the amount spent on its category
// within the current calendar month.
func (s *Service) GetBudgetsData(userID int64) ([]models.BudgetData, error) {
	start, end := utils.CurrentMonthRange(s.now())
	return s.store.BudgetsWithSpent(userID, start, end)
}

// GetBudgetsOverview assembles the budgets page: statuses, totals and alerts
func (s *Service) GetBudgetsOverview(userID int64) (*BudgetsOverview, error) {
	budgets, err := s.GetBudgetsData(userID)
	if err != nil {
		return nil, err
	}

	overview := &BudgetsOverview{
		TotalBudget:  decimal.Zero,
		TotalSpent:   decimal.Zero,
		TotalBudgets: len(budgets),
		Alerts:       BuildBudgetAlerts(budgets),
	}
	for _, b := range budgets {
		overview.Budgets = append(overview.Budgets, BudgetStatus{
			BudgetData:     b,
			PercentageUsed: b.PercentageUsed(),
			Remaining:      b.Remaining(),
			IsOverBudget:   b.IsOverBudget(),
			StatusColor:    b.StatusColor(),
		})
		overview.TotalBudget = overview.TotalBudget.Add(b.Amount)
		overview.TotalSpent = overview.TotalSpent.Add(b.Spent)
	}
	overview.OverBudget = overview.TotalSpent.Sub(overview.TotalBudget)
	return overview, nil
}

// BuildBudgetAlerts derives the alert list from budget usage: over-budget
// first, then warnings (>= 80%), then informational entries, capped at 4.
func BuildBudgetAlerts(budgets []models.BudgetData) []models.BudgetAlert {
	const maxAlerts = 4
	var danger, warning, info []models.BudgetAlert

	for _, b := range budgets {
		switch {
		case b.IsOverBudget():
			danger = append(danger, models.BudgetAlert{
				Type:    "danger",
				Icon:    "exclamation-circle",
				Name:    b.Name,
				Message: fmt.Sprintf("is %d%% over budget", b.PercentageUsed()),
			})
		case b.PercentageUsed() >= 80:
			warning = append(warning, models.BudgetAlert{
				Type:    "warning",
				Icon:    "exclamation-triangle",
				Name:    b.Name,
				Message: fmt.Sprintf("is at %d%% of budget", b.PercentageUsed()),
			})
		default:
			info = append(info, models.BudgetAlert{
				Type:    "info",
				Icon:    "info-circle",
				Name:    b.Name,
				Message: "is within budget",
			})
		}
	}

	alerts := make([]models.BudgetAlert, 0, maxAlerts)
	alerts = append(alerts, danger...)
	alerts = append(alerts, warning...)
	alerts = append(alerts, info...)
	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	return alerts
}

// NotifyOverBudget emails the user their current alert list when any budget
// is over its ceiling. A nil mailer turns this into a no-op.
func (s *Service) NotifyOverBudget(userID int64) error {
	if s.mailer == nil {
		s.log.Warnf("Mailer not configured, skipping budget alert email for user %d", userID)
		return nil
	}

	user, err := s.store.FindUserByID(userID)
	if err != nil {
		return err
	}
	budgets, err := s.GetBudgetsData(userID)
	if err != nil {
		return err
	}

	overBudget := false
	for _, b := range budgets {
		if b.IsOverBudget() {
			overBudget = true
			break
		}
	}
	if !overBudget {
		return nil
	}

	alerts := BuildBudgetAlerts(budgets)
	if err := s.mailer.SendBudgetAlerts(user.Email, user.Username, alerts); err != nil {
		return fmt.Errorf("failed to send budget alerts: %w", err)
	}

	s.log.Infof("Budget alerts sent to user %d", userID)
	return nil
}
