package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

// TransactionInput carries the user-supplied fields for a ledger write. The
// transaction type is never part of the input: it is copied from the category.
type TransactionInput struct {
	CategoryID  int64
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// TransactionsPage is a filtered ledger listing with its totals
type TransactionsPage struct {
	Transactions  []models.TransactionData `json:"transactions"`
	TotalIncome   decimal.Decimal          `json:"total_income"`
	TotalExpenses decimal.Decimal          `json:"total_expenses"`
	NetIncome     decimal.Decimal          `json:"net_income"`
}

func (s *Service) validateTransactionInput(userID int64, in TransactionInput) (*models.Category, error) {
	if in.CategoryID == 0 {
		return nil, fmt.Errorf("category is required: %w", models.ErrValidation)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than 0: %w", models.ErrValidation)
	}
	return s.store.FindCategoryByID(in.CategoryID, userID)
}

// CreateTransaction appends a ledger entry and applies the incremental
// balance update: balance += amount for income, -= amount for expense.
// When the balance update fails the ledger entry stays in place and the
// error is surfaced; the balance is stale until the next recalculation.
func (s *Service) CreateTransaction(userID int64, in TransactionInput) (*models.Transaction, error) {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return nil, err
	}
	category, err := s.validateTransactionInput(userID, in)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	transaction := &models.Transaction{
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Type:        category.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        date,
	}
	if err := s.store.CreateTransaction(transaction); err != nil {
		return nil, err
	}

	delta := in.Amount
	if category.Type == models.TypeExpense {
		delta = delta.Neg()
	}
	if err := s.store.ApplyToBalance(account.ID, delta); err != nil {
		s.log.Errorf("Balance update failed for account %d after creating transaction %d: %v", account.ID, transaction.ID, err)
		return transaction, fmt.Errorf("transaction recorded but balance update failed: %w", err)
	}

	s.log.Infof("Transaction %d created for account %d", transaction.ID, account.ID)
	return transaction, nil
}

// UpdateTransaction rewrites a ledger entry and then fully recalculates the
// balance. Edits never use the incremental path: un-applying the old
// amount and type before applying the new one is exactly the bug surface
// the full recalculation avoids.
func (s *Service) UpdateTransaction(userID, transactionID int64, in TransactionInput) (*models.Transaction, error) {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return nil, err
	}
	transaction, err := s.store.FindTransactionByID(transactionID, account.ID)
	if err != nil {
		return nil, err
	}
	category, err := s.validateTransactionInput(userID, in)
	if err != nil {
		return nil, err
	}

	transaction.CategoryID = category.ID
	transaction.Type = category.Type
	transaction.Amount = in.Amount
	transaction.Description = in.Description
	if !in.Date.IsZero() {
		transaction.Date = in.Date
	}
	if err := s.store.UpdateTransaction(transaction); err != nil {
		return nil, err
	}

	if _, err := s.store.RecalculateBalance(account.ID); err != nil {
		s.log.Errorf("Balance recalculation failed for account %d after updating transaction %d: %v", account.ID, transaction.ID, err)
		return transaction, fmt.Errorf("transaction updated but balance recalculation failed: %w", err)
	}

	s.log.Infof("Transaction %d updated for account %d", transaction.ID, account.ID)
	return transaction, nil
}

// DeleteTransaction removes a ledger entry and fully recalculates the balance
func (s *Service) DeleteTransaction(userID, transactionID int64) error {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(transactionID, account.ID); err != nil {
		return err
	}

	if _, err := s.store.RecalculateBalance(account.ID); err != nil {
		s.log.Errorf("Balance recalculation failed for account %d after deleting transaction %d: %v", account.ID, transactionID, err)
		return fmt.Errorf("transaction deleted but balance recalculation failed: %w", err)
	}

	s.log.Infof("Transaction %d deleted from account %d", transactionID, account.ID)
	return nil
}

// RecalculateBalance recomputes the user's cached balance from the ledger
func (s *Service) RecalculateBalance(userID int64) (decimal.Decimal, error) {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.store.RecalculateBalance(account.ID)
}

// ListTransactions returns the filtered ledger, most recent first, together
// with income/expense totals over the whole filtered set.
func (s *Service) ListTransactions(userID int64, f models.TransactionFilter) (*TransactionsPage, error) {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.store.ListTransactions(account.ID, f)
	if err != nil {
		return nil, err
	}
	// Totals honor the type filter: filtering to expenses leaves income at 0.
	totalIncome, totalExpenses := decimal.Zero, decimal.Zero
	if f.Type == "" || f.Type == models.TypeIncome {
		if totalIncome, err = s.store.SumByType(account.ID, models.TypeIncome, f); err != nil {
			return nil, err
		}
	}
	if f.Type == "" || f.Type == models.TypeExpense {
		if totalExpenses, err = s.store.SumByType(account.ID, models.TypeExpense, f); err != nil {
			return nil, err
		}
	}

	return &TransactionsPage{
		Transactions:  transactions,
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetIncome:     totalIncome.Sub(totalExpenses),
	}, nil
}
