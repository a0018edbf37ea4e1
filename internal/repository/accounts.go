package repository

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(account *models.Account) error {
	query := `
		INSERT INTO accounts (user_id, balance)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, account.UserID, account.Balance).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return storeErr("create account", err)
	}
	return nil
}

// FindAccountByUserID retrieves the account owned by the given user
func (r *Repository) FindAccountByUserID(userID int64) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT id, user_id, balance, created_at, updated_at
		FROM accounts
		WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).
		Scan(&account.ID, &account.UserID, &account.Balance, &account.CreatedAt, &account.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account for user %d: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("find account", err)
	}
	return account, nil
}

// ApplyToBalance shifts the cached balance by delta in a single statement.
// Used on the incremental create path; negative deltas record expenses.
func (r *Repository) ApplyToBalance(accountID int64, delta decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`
	result, err := r.db.Exec(query, delta, accountID)
	if err != nil {
		return storeErr("apply to balance", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("account %d: %w", accountID, models.ErrNotFound)
	}
	return nil
}

// RecalculateBalance recomputes the cached balance from the full ledger in a
// single statement: sum(income) - sum(expense). Required after edits,
// deletes and bulk imports, where the incremental path has no safe inverse.
func (r *Repository) RecalculateBalance(accountID int64) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = COALESCE((
			SELECT SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END)
			FROM transactions
			WHERE account_id = accounts.id
		), 0), updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING balance`
	var balance decimal.Decimal
	err := r.db.QueryRow(query, accountID).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, fmt.Errorf("account %d: %w", accountID, models.ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, storeErr("recalculate balance", err)
	}
	return balance, nil
}

// ListAccountIDs returns the IDs of every account, for the reconciliation job
func (r *Repository) ListAccountIDs() ([]int64, error) {
	rows, err := r.db.Query(`SELECT id FROM accounts ORDER BY id`)
	if err != nil {
		return nil, storeErr("list accounts", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr("scan account id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
