// Package report exports monthly summaries as Excel workbooks.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/milkagency/internal/models"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	salesSheet = "Sales"
	duesSheet  = "Dues"
)

var salesHeadings = []string{"Customer", "Shop", "Bills", "Liters", "Sales", "Paid", "Profit", "Due"}

// MonthlySales writes one row per customer plus a totals row, and a second
// sheet listing customers who still owe money.
func MonthlySales(year, month int, rows []models.SalesRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	title := fmt.Sprintf("Monthly sales summary: %s %d", time.Month(month), year)
	if err := f.SetCellValue(salesSheet, "A1", title); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	if err := writeRow(f, salesSheet, 3, toCells(salesHeadings)); err != nil {
		return nil, err
	}

	var bills int
	var liters, sales, paid, profit, due decimal.Decimal
	r := 4
	for _, row := range rows {
		err := writeRow(f, salesSheet, r, []any{
			row.CustomerName, row.ShopName, row.Bills,
			num(row.Liters), num(row.Sales), num(row.Paid), num(row.Profit), num(row.Due),
		})
		if err != nil {
			return nil, err
		}
		bills += row.Bills
		liters = liters.Add(row.Liters)
		sales = sales.Add(row.Sales)
		paid = paid.Add(row.Paid)
		profit = profit.Add(row.Profit)
		due = due.Add(row.Due)
		r++
	}
	if err := writeRow(f, salesSheet, r, []any{"Total", "", bills, num(liters), num(sales), num(paid), num(profit), num(due)}); err != nil {
		return nil, err
	}
	for _, span := range [][2]string{{"A1", "A1"}, {"A3", "H3"}, {fmt.Sprintf("A%d", r), fmt.Sprintf("H%d", r)}} {
		if err := f.SetCellStyle(salesSheet, span[0], span[1], bold); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(salesSheet, "A", "B", 24); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(duesSheet); err != nil {
		return nil, fmt.Errorf("failed to add dues sheet: %w", err)
	}
	if err := writeRow(f, duesSheet, 1, []any{"Customer", "Shop", "Due"}); err != nil {
		return nil, err
	}
	r = 2
	for _, row := range rows {
		if !row.Due.IsPositive() {
			continue
		}
		if err := writeRow(f, duesSheet, r, []any{row.CustomerName, row.ShopName, num(row.Due)}); err != nil {
			return nil, err
		}
		r++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName is the download name for a month's workbook.
func FileName(year, month int) string {
	return fmt.Sprintf("monthly-sales-%d-%02d.xlsx", year, month)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func toCells(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// num stores money as a spreadsheet number rounded to paise.
func num(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
