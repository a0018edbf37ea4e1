package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

// CreateGoal creates a new savings goal
func (r *Repository) CreateGoal(goal *models.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, description, target_amount, current_amount, target_date, icon, color, achieved, achieved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, start_date, updated_at`
	err := r.db.QueryRow(query,
		goal.UserID,
		goal.Name,
		goal.Description,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Icon,
		goal.Color,
		goal.Achieved,
		goal.AchievedAt).Scan(&goal.ID, &goal.StartDate, &goal.UpdatedAt)
	if err != nil {
		return storeErr("create goal", err)
	}
	return nil
}

// FindGoalByID retrieves a goal owned by the given user
func (r *Repository) FindGoalByID(id, userID int64) (*models.Goal, error) {
	goal := &models.Goal{}
	query := `
		SELECT id, user_id, name, description, target_amount, current_amount, start_date, target_date,
		       icon, color, achieved, achieved_at, updated_at
		FROM goals
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.Description, &goal.TargetAmount, &goal.CurrentAmount,
			&goal.StartDate, &goal.TargetDate, &goal.Icon, &goal.Color, &goal.Achieved, &goal.AchievedAt, &goal.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("goal %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("find goal", err)
	}
	return goal, nil
}

// ListGoals returns all goals owned by the user
func (r *Repository) ListGoals(userID int64) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, description, target_amount, current_amount, start_date, target_date,
		       icon, color, achieved, achieved_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, storeErr("list goals", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.TargetAmount, &g.CurrentAmount,
			&g.StartDate, &g.TargetDate, &g.Icon, &g.Color, &g.Achieved, &g.AchievedAt, &g.UpdatedAt); err != nil {
			return nil, storeErr("scan goal", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoal rewrites a goal's mutable fields. The start date is set once at
// creation and never touched again.
func (r *Repository) UpdateGoal(goal *models.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, description = $2, target_amount = $3, current_amount = $4, target_date = $5,
		    icon = $6, color = $7, achieved = $8, achieved_at = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $10 AND user_id = $11`
	result, err := r.db.Exec(query,
		goal.Name,
		goal.Description,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Icon,
		goal.Color,
		goal.Achieved,
		goal.AchievedAt,
		goal.ID,
		goal.UserID)
	if err != nil {
		return storeErr("update goal", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("goal %d: %w", goal.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteGoal removes a goal and, via cascade, its history entries
func (r *Repository) DeleteGoal(id, userID int64) error {
	result, err := r.db.Exec(`DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete goal", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("goal %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// AppendGoalHistory records an amount snapshot for a goal. History is
// append-only: entries are never edited or removed individually.
func (r *Repository) AppendGoalHistory(goalID int64, amount decimal.Decimal) error {
	_, err := r.db.Exec(`INSERT INTO goal_history (goal_id, amount) VALUES ($1, $2)`, goalID, amount)
	if err != nil {
		return storeErr("append goal history", err)
	}
	return nil
}

// GoalHistorySince returns a goal's history entries dated on or after since,
// oldest first.
func (r *Repository) GoalHistorySince(goalID int64, since time.Time) ([]models.GoalHistory, error) {
	query := `
		SELECT id, goal_id, amount, date
		FROM goal_history
		WHERE goal_id = $1 AND date >= $2
		ORDER BY date`
	rows, err := r.db.Query(query, goalID, since)
	if err != nil {
		return nil, storeErr("goal history", err)
	}
	defer rows.Close()

	var history []models.GoalHistory
	for rows.Next() {
		var h models.GoalHistory
		if err := rows.Scan(&h.ID, &h.GoalID, &h.Amount, &h.Date); err != nil {
			return nil, storeErr("scan goal history", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
