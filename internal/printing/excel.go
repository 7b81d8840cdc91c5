package printing

import (
	"fmt"

	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the export workbook.
const (
	SheetDocuments = "Documents"
	SheetSummary   = "Summary"
)

var documentHeadings = []string{"Number", "Type", "Client", "Date", "Status", "Worker", "Items", "Amount"}

// Workbook exports the documents and the report summary as XLSX bytes.
func Workbook(docs []models.Document, workers []models.Worker, summary services.Summary, currency string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDocuments); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(workers))
	for _, w := range workers {
		names[w.ID] = w.Name
	}
	if err := writeRow(f, SheetDocuments, 1, toAny(documentHeadings)); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(documentHeadings), 1)
	if err := f.SetCellStyle(SheetDocuments, "A1", last, bold); err != nil {
		return nil, err
	}
	for i, d := range docs {
		worker := names[d.AssignedWorkerID]
		if worker == "" {
			worker = d.AssignedWorkerID
		}
		row := []any{d.Number, string(d.Type), d.ClientName, d.Date, string(d.Status), worker, len(d.Items), Round2(d.Amount)}
		if err := writeRow(f, SheetDocuments, i+2, row); err != nil {
			return nil, err
		}
	}

	summaryRows := [][]any{
		{"Metric", "Value (" + currency + ")"},
		{"Revenue", Round2(summary.Revenue)},
		{"Cost of goods", Round2(summary.CostOfGoods)},
		{"Gross profit", Round2(summary.GrossProfit)},
		{"Net margin %", Round2(summary.NetMarginPercent)},
		{"Glass profit", Round2(summary.Profit.Glass)},
		{"Aluminum profit", Round2(summary.Profit.Aluminum)},
		{"Service profit", Round2(summary.Profit.Service)},
		{"Pending amount", Round2(summary.PendingAmount)},
		{"Inventory value", Round2(summary.InventoryValue)},
		{"Invoices", summary.InvoiceCount},
		{"Quotations", summary.QuotationCount},
	}
	for i, row := range summaryRows {
		if err := writeRow(f, SheetSummary, i+1, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetDocuments, "A", "F", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetSummary, "A", "B", 20); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
