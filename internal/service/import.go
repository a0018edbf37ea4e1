package service

import (
	"fmt"
	"io"

	"financetracker/internal/importer"
	"financetracker/internal/models"
)

// maxImportErrors caps how many row errors are reported back per upload
const maxImportErrors = 10

// ImportTransactionsCSV imports a CSV upload as an all-or-nothing batch: if
// any row fails validation nothing is persisted and the row errors are
// returned. On success every row is written in one database transaction
// followed by exactly one full balance recalculation.
func (s *Service) ImportTransactionsCSV(userID int64, r io.Reader) (int, []string, error) {
	account, err := s.store.FindAccountByUserID(userID)
	if err != nil {
		return 0, nil, err
	}

	categories, err := s.store.ListCategories(userID, "")
	if err != nil {
		return 0, nil, err
	}
	categoryMap := make(map[int64]models.Category, len(categories))
	for _, c := range categories {
		categoryMap[c.ID] = c
	}

	rows, rowErrs, err := importer.Parse(r, categoryMap)
	if err != nil {
		return 0, nil, err
	}
	if len(rowErrs) > 0 {
		if len(rowErrs) > maxImportErrors {
			rowErrs = rowErrs[:maxImportErrors]
		}
		return 0, rowErrs, fmt.Errorf("errors found in CSV file: %w", models.ErrValidation)
	}
	if len(rows) == 0 {
		return 0, nil, fmt.Errorf("no valid transactions found in the CSV file: %w", models.ErrValidation)
	}

	transactions := make([]*models.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, &models.Transaction{
			AccountID:   account.ID,
			CategoryID:  row.CategoryID,
			Type:        row.Type,
			Amount:      row.Amount,
			Description: row.Description,
			Date:        row.Date,
		})
	}
	if err := s.store.CreateTransactionsBatch(transactions); err != nil {
		return 0, nil, err
	}

	if _, err := s.store.RecalculateBalance(account.ID); err != nil {
		s.log.Errorf("Balance recalculation failed for account %d after CSV import: %v", account.ID, err)
		return len(transactions), nil, fmt.Errorf("transactions imported but balance recalculation failed: %w", err)
	}

	s.log.Infof("Imported %d transactions for account %d", len(transactions), account.ID)
	return len(transactions), nil, nil
}
