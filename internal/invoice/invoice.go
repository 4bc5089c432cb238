// Package invoice renders bills as A4 PDF invoices.
package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/models"
)

// Business identifies the issuer in the invoice header.
type Business struct {
	Name    string
	Address string
	Phone   string
}

// Document is everything printed on one invoice. Customer is nil for
// walk-in bills. MRP maps item IDs to their printed MRP.
type Document struct {
	Bill     *models.Bill
	Customer *models.Customer
	MRP      map[string]decimal.Decimal
}

var footerNotes = []string{
	"Monthly commission is settled against the first bill of the following month.",
	"Commission applies only to milk and curd packets.",
	"Goods once sold will not be taken back or exchanged.",
}

// Renderer draws invoices for one business.
type Renderer struct {
	business Business
}

func NewRenderer(b Business) *Renderer {
	return &Renderer{business: b}
}

// ArchiveKey is the storage key for a bill's PDF:
// <year>/<MonthName>/<dd-mm-yyyy>/<invoice>.pdf.
func ArchiveKey(bill *models.Bill) string {
	d := bill.InvoiceDate
	return fmt.Sprintf("%d/%s/%s/%s.pdf", d.Year(), d.Month(), d.Format("02-01-2006"), bill.InvoiceNumber)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

var (
	colWidths = []float64{8, 62, 18, 20, 24, 12, 20, 26}
	colTitles = []string{"#", "Item Details", "MRP", "Price/Unit", "Disc./Unit", "Qty", "Rate", "Total"}
)

// Render returns the PDF bytes for doc.
func (r *Renderer) Render(doc Document) ([]byte, error) {
	bill := doc.Bill
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(bill.InvoiceNumber, false)
	pdf.SetCreator(r.business.Name, false)
	pdf.SetCreationDate(time.Unix(bill.CreatedAt, 0).UTC())
	pdf.SetAutoPageBreak(true, 30)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-28)
		pdf.SetFont("Helvetica", "", 8)
		for _, note := range footerNotes {
			pdf.CellFormat(0, 4, "- "+note, "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 6, "Thank you for your business!", "", 1, "C", false, 0, "")
	})
	pdf.AddPage()

	r.header(pdf, bill)
	customerBlock(pdf, doc.Customer)
	total := itemsTable(pdf, bill, doc.MRP)
	totals(pdf, bill, total)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", bill.InvoiceNumber, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write invoice %s: %w", bill.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(pdf *fpdf.Fpdf, bill *models.Bill) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(120, 7, r.business.Name, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "TAX INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(120, 5, r.business.Address, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Invoice No: "+bill.InvoiceNumber, "", 1, "R", false, 0, "")
	phone := ""
	if r.business.Phone != "" {
		phone = "Phone: " + r.business.Phone
	}
	pdf.CellFormat(120, 5, phone, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Invoice Date: "+bill.InvoiceDate.Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func customerBlock(pdf *fpdf.Fpdf, c *models.Customer) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Bill and Ship To", "LTR", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	lines := []string{"Walk-in customer"}
	if c != nil {
		lines = []string{c.Name}
		if c.ShopName != "" {
			lines = append(lines, "Shop: "+c.ShopName)
		}
		if addr := c.Address(); addr != "" {
			lines = append(lines, "Address: "+addr)
		}
		lines = append(lines, "Phone: "+c.Phone)
	}
	for i, line := range lines {
		border := "LR"
		if i == len(lines)-1 {
			border = "LRB"
		}
		pdf.CellFormat(0, 5, line, border, 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// itemsTable draws the lines and returns the sum of line totals.
func itemsTable(pdf *fpdf.Fpdf, bill *models.Bill, mrp map[string]decimal.Decimal) decimal.Decimal {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, title := range colTitles {
		pdf.CellFormat(colWidths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	var (
		qty      int
		discount decimal.Decimal
		rateSum  decimal.Decimal
		total    decimal.Decimal
	)
	for i, line := range bill.Items {
		rate := line.PricePerUnit.Sub(line.Discount)
		disc := "-"
		if line.Discount.IsPositive() && line.PricePerUnit.IsPositive() {
			pct := line.Discount.Div(line.PricePerUnit).Mul(decimal.NewFromInt(100))
			disc = fmt.Sprintf("%s (%s%%)", money(line.Discount), pct.StringFixed(1))
		}
		mrpText := "-"
		if m, ok := mrp[line.ItemID]; ok && m.IsPositive() {
			mrpText = money(m)
		}
		cells := []string{
			fmt.Sprintf("%02d", i+1),
			line.ItemName,
			mrpText,
			money(line.PricePerUnit),
			disc,
			fmt.Sprint(line.Quantity),
			money(rate),
			money(line.TotalAmount),
		}
		for j, text := range cells {
			align := "R"
			if j == 1 {
				align = "L"
			}
			pdf.CellFormat(colWidths[j], 6, text, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)

		q := decimal.NewFromInt(int64(line.Quantity))
		qty += line.Quantity
		discount = discount.Add(line.Discount.Mul(q))
		rateSum = rateSum.Add(rate.Mul(q))
		total = total.Add(line.TotalAmount)
	}

	pdf.SetFont("Helvetica", "B", 9)
	sub := []string{"", "Sub-total Amount", "", "", money(discount), fmt.Sprint(qty), money(rateSum), money(total)}
	for j, text := range sub {
		align := "R"
		if j == 1 {
			align = "L"
		}
		pdf.CellFormat(colWidths[j], 7, text, "1", 0, align, false, 0, "")
	}
	pdf.Ln(10)
	return total
}

func totals(pdf *fpdf.Fpdf, bill *models.Bill, lineTotal decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 10)
	if bill.CommissionDeducted.IsPositive() {
		pdf.CellFormat(0, 6, fmt.Sprintf("Commission deducted for %02d/%d: Rs. %s",
			bill.CommissionMonth, bill.CommissionYear, money(bill.CommissionDeducted)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, "Items total before commission: Rs. "+money(lineTotal), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 10)
	}

	grand := bill.OpDueAmount.Add(bill.TotalAmount)
	due := bill.DueAfter()
	rows := [][2]string{
		{"Opening Due", money(bill.OpDueAmount)},
		{"Bill Amount", money(bill.TotalAmount)},
		{"Grand Total", money(grand)},
		{"Paid Amount", money(bill.LastPaid)},
	}
	for _, row := range rows {
		pdf.CellFormat(40, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, row[1], "", 1, "R", false, 0, "")
	}
	if due.IsNegative() {
		pdf.SetTextColor(0, 128, 0)
		pdf.CellFormat(40, 7, "Wallet Amount", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, money(due.Neg()), "", 1, "R", false, 0, "")
	} else {
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(40, 7, "Balance Due", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, money(due), "", 1, "R", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}
