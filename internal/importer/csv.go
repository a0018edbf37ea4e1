// Package importer parses transaction CSV uploads. Parsing and validation
// are separated from persistence so a file is either fully valid or
// rejected before anything is written.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

// Required CSV header columns, in any order
var requiredHeaders = []string{"date", "description", "type", "amount", "category_id"}

// Accepted date layouts for the date column
var dateLayouts = []string{"2006-01-02", "01/02/2006", "02/01/2006", "2006/01/02"}

// Row is one validated CSV line ready to become a ledger entry
type Row struct {
	Date        time.Time
	Description string
	Type        string
	Amount      decimal.Decimal
	CategoryID  int64
}

// Parse reads the CSV stream and validates every row against the caller's
// categories. It returns the valid rows and one message per invalid row;
// callers must persist nothing when any message is returned. Row numbers in
// messages count the header as row 1.
func Parse(r io.Reader, categories map[int64]models.Category) ([]Row, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("CSV file is empty or unreadable: %w", models.ErrValidation)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredHeaders {
		if _, ok := columns[name]; !ok {
			return nil, nil, fmt.Errorf("CSV must contain these headers: %s: %w",
				strings.Join(requiredHeaders, ", "), models.ErrValidation)
		}
	}

	var rows []Row
	var errs []string
	rowNumber := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: malformed CSV line", rowNumber))
			continue
		}

		field := func(name string) string {
			i := columns[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		dateStr := field("date")
		description := field("description")
		transactionType := strings.ToLower(field("type"))
		amountStr := field("amount")
		categoryStr := field("category_id")

		if dateStr == "" || transactionType == "" || amountStr == "" || categoryStr == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing required fields", rowNumber))
			continue
		}

		if !models.ValidType(transactionType) {
			errs = append(errs, fmt.Sprintf("Row %d: Type must be 'income' or 'expense'", rowNumber))
			continue
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid amount format", rowNumber))
			continue
		}
		if !amount.IsPositive() {
			errs = append(errs, fmt.Sprintf("Row %d: Amount must be greater than 0", rowNumber))
			continue
		}

		categoryID, err := strconv.ParseInt(categoryStr, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid category ID %q", rowNumber, categoryStr))
			continue
		}
		category, ok := categories[categoryID]
		if !ok {
			errs = append(errs, fmt.Sprintf("Row %d: Category ID %d not found or doesn't belong to user", rowNumber, categoryID))
			continue
		}
		if category.Type != transactionType {
			errs = append(errs, fmt.Sprintf("Row %d: Category type '%s' doesn't match transaction type '%s'", rowNumber, category.Type, transactionType))
			continue
		}

		date, ok := parseDate(dateStr)
		if !ok {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid date format. Use YYYY-MM-DD or MM/DD/YYYY", rowNumber))
			continue
		}

		if description == "" {
			description = "Imported transaction"
		}
		rows = append(rows, Row{
			Date:        date,
			Description: description,
			Type:        transactionType,
			Amount:      amount,
			CategoryID:  categoryID,
		})
	}

	return rows, errs, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
