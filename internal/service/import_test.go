package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

func TestImportTransactionsCSV(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, income, expense := seedUser(svc)

	csv := fmt.Sprintf(`date,description,type,amount,category_id
2026-08-01,Paycheck,income,500,%d
2026-08-02,Food,expense,120,%d
2026-08-03,,expense,30,%d
`, income.ID, expense.ID, expense.ID)

	count, rowErrs, err := svc.ImportTransactionsCSV(userID, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("row errors = %v, want none", rowErrs)
	}
	if count != 3 {
		t.Errorf("imported = %d, want 3", count)
	}
	if len(store.transactions) != 3 {
		t.Errorf("stored transactions = %d, want 3", len(store.transactions))
	}
	if store.recalcCalls != 1 {
		t.Errorf("recalculations = %d, want exactly 1 for the whole batch", store.recalcCalls)
	}
	if b := balance(t, svc, userID); !b.Equal(decimal.NewFromInt(350)) {
		t.Errorf("balance after import = %s, want 350", b)
	}

	// The blank description takes the default.
	found := false
	for _, tr := range store.transactions {
		if tr.Description == "Imported transaction" {
			found = true
		}
	}
	if !found {
		t.Error("blank description should default to \"Imported transaction\"")
	}
}

func TestImportTransactionsCSVAllOrNothing(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, income, expense := seedUser(svc)

	csv := fmt.Sprintf(`date,description,type,amount,category_id
2026-08-01,Paycheck,income,500,%d
2026-08-02,Bad,expense,-40,%d
2026-08-03,Food,expense,30,%d
`, income.ID, expense.ID, expense.ID)

	count, rowErrs, err := svc.ImportTransactionsCSV(userID, strings.NewReader(csv))
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if count != 0 {
		t.Errorf("imported = %d, want 0", count)
	}
	if len(rowErrs) != 1 {
		t.Fatalf("row errors = %v, want exactly one", rowErrs)
	}
	if !strings.Contains(rowErrs[0], "Row 3") {
		t.Errorf("row error %q should name row 3 (header is row 1)", rowErrs[0])
	}
	if len(store.transactions) != 0 {
		t.Errorf("stored transactions = %d, want 0 on a rejected file", len(store.transactions))
	}
	if store.recalcCalls != 0 {
		t.Errorf("recalculations = %d, want 0 on a rejected file", store.recalcCalls)
	}
}

func TestImportTransactionsCSVCapsRowErrors(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, _, expense := seedUser(svc)

	var b strings.Builder
	b.WriteString("date,description,type,amount,category_id\n")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "2026-08-01,Bad,expense,-1,%d\n", expense.ID)
	}

	_, rowErrs, err := svc.ImportTransactionsCSV(userID, strings.NewReader(b.String()))
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(rowErrs) != 10 {
		t.Errorf("row errors = %d, want capped at 10", len(rowErrs))
	}
}

func TestImportTransactionsCSVEmptyFile(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID, _, _ := seedUser(svc)

	_, _, err := svc.ImportTransactionsCSV(userID, strings.NewReader("date,description,type,amount,category_id\n"))
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("header-only file err = %v, want ErrValidation", err)
	}

	_, _, err = svc.ImportTransactionsCSV(userID, strings.NewReader(""))
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty file err = %v, want ErrValidation", err)
	}
}
