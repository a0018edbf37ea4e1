package repository

import (
	"database/sql"
	"fmt"

	"financetracker/internal/models"
)

// CreateCategory creates a new category. Names are unique across the whole
// deployment, so a duplicate name from any user is a conflict.
func (r *Repository) CreateCategory(category *models.Category) error {
	query := `
		INSERT INTO categories (user_id, name, description, type, icon, color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRow(query, category.UserID, category.Name, category.Description, category.Type, category.Icon, category.Color).
		Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category name %q already taken: %w", category.Name, models.ErrConflict)
		}
		return storeErr("create category", err)
	}
	return nil
}

// FindCategoryByID retrieves a category owned by the given user
func (r *Repository) FindCategoryByID(id, userID int64) (*models.Category, error) {
	category := &models.Category{}
	query := `
		SELECT id, user_id, name, description, type, icon, color
		FROM categories
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&category.ID, &category.UserID, &category.Name, &category.Description, &category.Type, &category.Icon, &category.Color)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("find category", err)
	}
	return category, nil
}

// UpdateCategory updates a category's display fields. The type is immutable
// once set, so it is deliberately absent here.
func (r *Repository) UpdateCategory(category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, description = $2, icon = $3, color = $4
		WHERE id = $5 AND user_id = $6`
	result, err := r.db.Exec(query, category.Name, category.Description, category.Icon, category.Color, category.ID, category.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category name %q already taken: %w", category.Name, models.ErrConflict)
		}
		return storeErr("update category", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("category %d: %w", category.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteCategory deletes a category and, via cascade, its transactions.
// Callers must recalculate the owning account's balance afterwards.
func (r *Repository) DeleteCategory(id, userID int64) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storeErr("delete category", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("category %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// ListCategories returns the user's categories, optionally narrowed by type
func (r *Repository) ListCategories(userID int64, categoryType string) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, description, type, icon, color
		FROM categories
		WHERE user_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY name`
	rows, err := r.db.Query(query, userID, categoryType)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Type, &c.Icon, &c.Color); err != nil {
			return nil, storeErr("scan category", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CategorySummaries returns each category of the given type with its
// all-time transaction count and total amount.
func (r *Repository) CategorySummaries(userID int64, categoryType string) ([]models.CategorySummary, error) {
	query := `
		SELECT c.id, c.name, c.description, c.type, c.icon, c.color,
		       COUNT(t.id), COALESCE(SUM(t.amount), 0)
		FROM categories c
		LEFT JOIN transactions t ON t.category_id = c.id
		WHERE c.user_id = $1 AND c.type = $2
		GROUP BY c.id, c.name, c.description, c.type, c.icon, c.color
		ORDER BY c.name`
	rows, err := r.db.Query(query, userID, categoryType)
	if err != nil {
		return nil, storeErr("category summaries", err)
	}
	defer rows.Close()

	var summaries []models.CategorySummary
	for rows.Next() {
		var s models.CategorySummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Type, &s.Icon, &s.Color, &s.TotalTransactions, &s.TotalAmount); err != nil {
			return nil, storeErr("scan category summary", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
