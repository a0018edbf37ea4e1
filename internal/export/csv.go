// Package export writes transaction listings as CSV or XML documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"financetracker/internal/models"
)

// csvHeader matches the import format, so an export can be re-imported
var csvHeader = []string{"date", "description", "type", "amount", "category_id"}

// WriteCSV writes the transactions as CSV in the listing's order
func WriteCSV(w io.Writer, transactions []models.TransactionData) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, t := range transactions {
		record := []string{
			t.Date.Format("2006-01-02 15:04:05"),
			t.Description,
			t.Type,
			t.Amount.StringFixed(2),
			fmt.Sprintf("%d", t.CategoryID),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
