package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

// CreateTransaction inserts a single ledger entry
func (r *Repository) CreateTransaction(transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, category_id, type, amount, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRow(query,
		transaction.AccountID,
		transaction.CategoryID,
		transaction.Type,
		transaction.Amount,
		transaction.Description,
		transaction.Date).Scan(&transaction.ID)
	if err != nil {
		return storeErr("create transaction", err)
	}
	return nil
}

// CreateTransactionsBatch inserts all entries inside one database
// transaction: either every row is persisted or none are.
func (r *Repository) CreateTransactionsBatch(transactions []*models.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return storeErr("begin batch insert", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (account_id, category_id, type, amount, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`)
	if err != nil {
		return storeErr("prepare batch insert", err)
	}
	defer stmt.Close()

	for _, t := range transactions {
		if err := stmt.QueryRow(t.AccountID, t.CategoryID, t.Type, t.Amount, t.Description, t.Date).Scan(&t.ID); err != nil {
			return storeErr("batch insert transaction", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit batch insert", err)
	}
	return nil
}

// FindTransactionByID retrieves a ledger entry belonging to the given account
func (r *Repository) FindTransactionByID(id, accountID int64) (*models.Transaction, error) {
	transaction := &models.Transaction{}
	query := `
		SELECT id, account_id, category_id, type, amount, description, date
		FROM transactions
		WHERE id = $1 AND account_id = $2`
	err := r.db.QueryRow(query, id, accountID).
		Scan(&transaction.ID, &transaction.AccountID, &transaction.CategoryID, &transaction.Type,
			&transaction.Amount, &transaction.Description, &transaction.Date)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("find transaction", err)
	}
	return transaction, nil
}

// UpdateTransaction rewrites a ledger entry's mutable fields
func (r *Repository) UpdateTransaction(transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $1, type = $2, amount = $3, description = $4, date = $5
		WHERE id = $6 AND account_id = $7`
	result, err := r.db.Exec(query,
		transaction.CategoryID,
		transaction.Type,
		transaction.Amount,
		transaction.Description,
		transaction.Date,
		transaction.ID,
		transaction.AccountID)
	if err != nil {
		return storeErr("update transaction", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction %d: %w", transaction.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteTransaction removes a ledger entry belonging to the given account
func (r *Repository) DeleteTransaction(id, accountID int64) error {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return storeErr("delete transaction", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// filterClauses appends WHERE fragments and args for the optional filter
// fields. Date bounds are inclusive.
func filterClauses(f models.TransactionFilter, conditions []string, args []interface{}) ([]string, []interface{}) {
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", len(args)))
	}
	if f.CategoryID != 0 {
		args = append(args, f.CategoryID)
		conditions = append(conditions, fmt.Sprintf("t.category_id = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conditions = append(conditions, fmt.Sprintf("t.type = $%d", len(args)))
	}
	return conditions, args
}

// ListTransactions returns the account's ledger entries joined with their
// category display fields, most recent first.
func (r *Repository) ListTransactions(accountID int64, f models.TransactionFilter) ([]models.TransactionData, error) {
	args := []interface{}{accountID}
	conditions := []string{"t.account_id = $1"}
	conditions, args = filterClauses(f, conditions, args)

	query := `
		SELECT t.id, t.date, t.description, t.type, t.amount,
		       t.category_id, c.name, c.icon, c.color
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY t.date DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, storeErr("list transactions", err)
	}
	defer rows.Close()

	var transactions []models.TransactionData
	for rows.Next() {
		var t models.TransactionData
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.Type, &t.Amount,
			&t.CategoryID, &t.CategoryName, &t.CategoryIcon, &t.CategoryColor); err != nil {
			return nil, storeErr("scan transaction", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// SumByType totals transaction amounts of one type for an account, honoring
// the filter's date range and category.
func (r *Repository) SumByType(accountID int64, transactionType string, f models.TransactionFilter) (decimal.Decimal, error) {
	f.Type = transactionType
	args := []interface{}{accountID}
	conditions := []string{"t.account_id = $1"}
	conditions, args = filterClauses(f, conditions, args)

	query := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		WHERE ` + strings.Join(conditions, " AND ")

	var total decimal.Decimal
	if err := r.db.QueryRow(query, args...).Scan(&total); err != nil {
		return decimal.Zero, storeErr("sum transactions", err)
	}
	return total, nil
}

// ExpensesByCategory groups expense amounts by category within the inclusive
// date range, largest total first. Colors are the stored color names; the
// service maps them to hex codes.
func (r *Repository) ExpensesByCategory(accountID int64, f models.TransactionFilter) ([]models.PieSlice, error) {
	f.Type = models.TypeExpense
	args := []interface{}{accountID}
	conditions := []string{"t.account_id = $1"}
	conditions, args = filterClauses(f, conditions, args)

	query := `
		SELECT c.name, c.color, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY c.name, c.color
		ORDER BY total DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, storeErr("expenses by category", err)
	}
	defer rows.Close()

	var slices []models.PieSlice
	for rows.Next() {
		var s models.PieSlice
		if err := rows.Scan(&s.Category, &s.Color, &s.Total); err != nil {
			return nil, storeErr("scan expense group", err)
		}
		slices = append(slices, s)
	}
	return slices, rows.Err()
}
