package repository

import (
	"database/sql"
	"fmt"
	"time"

	"financetracker/internal/models"
)

// CreateBudget creates a new budget for one of the user's categories
func (r *Repository) CreateBudget(budget *models.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category_id, amount, period, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, budget.UserID, budget.CategoryID, budget.Amount, budget.Period, budget.Description).
		Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return storeErr("create budget", err)
	}
	return nil
}

// FindBudgetByID retrieves a budget owned by the given user
func (r *Repository) FindBudgetByID(id, userID int64) (*models.Budget, error) {
	budget := &models.Budget{}
	query := `
		SELECT id, user_id, category_id, amount, period, description, created_at, updated_at
		FROM budgets
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &budget.Amount, &budget.Period,
			&budget.Description, &budget.CreatedAt, &budget.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("budget %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("find budget", err)
	}
	return budget, nil
}

// UpdateBudget rewrites a budget's mutable fields
func (r *Repository) UpdateBudget(budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET category_id = $1, amount = $2, period = $3, description = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND user_id = $6`
	result, err := r.db.Exec(query, budget.CategoryID, budget.Amount, budget.Period, budget.Description, budget.ID, budget.UserID)
	if err != nil {
		return storeErr("update budget", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("budget %d: %w", budget.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteBudget removes a budget owned by the given user
func (r *Repository) DeleteBudget(id, userID int64) error {
	result, err := r.db.Exec(`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete budget", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("budget %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// BudgetsWithSpent returns every budget of the user joined with its category
// and the amount spent on that category within the inclusive date range.
func (r *Repository) BudgetsWithSpent(userID int64, start, end time.Time) ([]models.BudgetData, error) {
	query := `
		SELECT b.id, c.name, c.icon, c.color, b.amount, b.description,
		       COALESCE((
		           SELECT SUM(t.amount)
		           FROM transactions t
		           WHERE t.category_id = b.category_id
		             AND t.date >= $2 AND t.date <= $3
		       ), 0) AS spent
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = $1
		ORDER BY b.id`
	rows, err := r.db.Query(query, userID, start, end)
	if err != nil {
		return nil, storeErr("budgets with spent", err)
	}
	defer rows.Close()

	var budgets []models.BudgetData
	for rows.Next() {
		var b models.BudgetData
		if err := rows.Scan(&b.ID, &b.Name, &b.Icon, &b.Color, &b.Amount, &b.Description, &b.Spent); err != nil {
			return nil, storeErr("scan budget", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}
