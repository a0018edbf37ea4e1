package export

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"financetracker/internal/models"
)

// WriteXML writes the transactions as an XML document with one
// <transaction> element per ledger entry, same field set as the CSV export.
func WriteXML(w io.Writer, transactions []models.TransactionData) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("transactions")
	root.CreateAttr("count", fmt.Sprintf("%d", len(transactions)))

	for _, t := range transactions {
		e := root.CreateElement("transaction")
		e.CreateAttr("id", fmt.Sprintf("%d", t.ID))
		e.CreateElement("date").SetText(t.Date.Format("2006-01-02 15:04:05"))
		e.CreateElement("description").SetText(t.Description)
		e.CreateElement("type").SetText(t.Type)
		e.CreateElement("amount").SetText(t.Amount.StringFixed(2))
		category := e.CreateElement("category")
		category.CreateAttr("id", fmt.Sprintf("%d", t.CategoryID))
		category.SetText(t.CategoryName)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write XML document: %w", err)
	}
	return nil
}
