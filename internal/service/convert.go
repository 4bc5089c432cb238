package service

import (
	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/pkg/api"
)

func toAPICustomer(c *models.Customer) *api.Customer {
	return &api.Customer{
		ID:             c.ID,
		Phone:          c.Phone,
		Name:           c.Name,
		ShopName:       c.ShopName,
		RetailerID:     c.RetailerID,
		FlatNumber:     c.FlatNumber,
		Area:           c.Area,
		PinCode:        c.PinCode,
		City:           c.City,
		State:          c.State,
		OpeningDue:     c.OpeningDue,
		Due:            c.Due,
		IsCommissioned: c.IsCommissioned,
		IsDelivery:     c.IsDelivery,
		Frozen:         c.Frozen,
		HasPassword:    c.PasswordHash != "",
		CreatedAt:      c.CreatedAt,
	}
}

func applyProfile(c *models.Customer, p api.CustomerProfile) {
	c.Name = p.Name
	c.ShopName = p.ShopName
	c.RetailerID = p.RetailerID
	c.FlatNumber = p.FlatNumber
	c.Area = p.Area
	c.PinCode = p.PinCode
	c.City = p.City
	c.State = p.State
	c.IsCommissioned = p.IsCommissioned
	c.IsDelivery = p.IsDelivery
}

func toAPICompany(c *models.Company) *api.Company {
	return &api.Company{ID: c.ID, Name: c.Name, Website: c.Website}
}

func toAPIItem(i *models.Item) *api.Item {
	return &api.Item{
		ID:            i.ID,
		Code:          i.Code,
		Name:          i.Name,
		CompanyID:     i.CompanyID,
		Category:      i.Category,
		SellingPrice:  i.SellingPrice,
		BuyingPrice:   i.BuyingPrice,
		MRP:           i.MRP,
		StockQuantity: i.StockQuantity,
		PcsCount:      i.PcsCount,
		UnitVolumeML:  i.UnitVolumeML,
		Description:   i.Description,
		Frozen:        i.Frozen,
	}
}

func applyItemFields(i *models.Item, f api.ItemFields) {
	i.Code = f.Code
	i.Name = f.Name
	i.CompanyID = f.CompanyID
	i.Category = models.NormalizeCategory(f.Category)
	i.SellingPrice = f.SellingPrice
	i.BuyingPrice = f.BuyingPrice
	i.MRP = f.MRP
	i.PcsCount = f.PcsCount
	i.UnitVolumeML = f.UnitVolumeML
	i.Description = f.Description
}

// toAPIBill converts a bill. customerName may be empty.
func toAPIBill(b *models.Bill, customerName string) *api.Bill {
	out := &api.Bill{
		ID:                 b.ID,
		InvoiceNumber:      b.InvoiceNumber,
		CustomerID:         b.CustomerID,
		CustomerName:       customerName,
		OrderID:            b.OrderID,
		InvoiceDate:        formatDate(b.InvoiceDate),
		TotalAmount:        b.TotalAmount,
		OpDueAmount:        b.OpDueAmount,
		LastPaid:           b.LastPaid,
		DueAfter:           b.DueAfter(),
		Profit:             b.Profit,
		CommissionDeducted: b.CommissionDeducted,
		CommissionYear:     b.CommissionYear,
		CommissionMonth:    b.CommissionMonth,
		CreatedAt:          b.CreatedAt,
		Deleted:            b.DeletedAt != 0,
	}
	for _, line := range b.Items {
		out.Items = append(out.Items, &api.BillItem{
			ID:           line.ID,
			ItemID:       line.ItemID,
			ItemName:     line.ItemName,
			PricePerUnit: line.PricePerUnit,
			Discount:     line.Discount,
			Quantity:     line.Quantity,
			TotalAmount:  line.TotalAmount,
		})
	}
	return out
}

func toBillInput(f api.BillFields) (models.BillInput, error) {
	date, err := parseDate("invoice_date", f.InvoiceDate)
	if err != nil {
		return models.BillInput{}, err
	}
	input := models.BillInput{
		CustomerID:  f.CustomerID,
		InvoiceDate: date,
		LastPaid:    f.LastPaid,
	}
	for _, l := range f.Lines {
		input.Lines = append(input.Lines, models.BillLineInput{
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Discount: l.Discount,
			Price:    l.Price,
		})
	}
	return input, nil
}

func toAPIPayment(p *models.CustomerPayment) *api.Payment {
	return &api.Payment{
		ID:            p.ID,
		CustomerID:    p.CustomerID,
		CustomerName:  p.CustomerName,
		BillID:        p.BillID,
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
		Method:        p.Method,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}
}

func toAPICommission(c *models.MonthlyCommission, customerName string) *api.Commission {
	return &api.Commission{
		ID:               c.ID,
		CustomerID:       c.CustomerID,
		CustomerName:     customerName,
		Year:             c.Year,
		Month:            c.Month,
		MilkVolume:       c.MilkVolume,
		CurdVolume:       c.CurdVolume,
		TotalVolume:      c.TotalVolume,
		MilkCommission:   c.MilkCommission,
		CurdCommission:   c.CurdCommission,
		CommissionAmount: c.CommissionAmount,
		Deducted:         c.Deducted,
		BillID:           c.BillID,
	}
}

func toAPIBreakdown(b calculator.CommissionBreakdown) *api.CommissionBreakdown {
	return &api.CommissionBreakdown{
		DaysInMonth:     b.DaysInMonth,
		MilkLiters:      b.MilkLiters,
		CurdLiters:      b.CurdLiters,
		AvgMilk:         b.AvgMilk,
		AvgCurd:         b.AvgCurd,
		AvgTotal:        b.AvgTotal,
		MilkCommission:  b.MilkCommission,
		CurdCommission:  b.CurdCommission,
		TotalCommission: b.TotalCommission,
		MilkRate:        b.MilkRate,
		CurdRate:        b.CurdRate,
		TotalRate:       b.TotalRate,
	}
}

func toAPIOrder(o *models.CustomerOrder, customerName string) *api.Order {
	out := &api.Order{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		CustomerID:          o.CustomerID,
		CustomerName:        customerName,
		Status:              o.Status,
		OrderDate:           formatDate(o.OrderDate),
		DeliveryDate:        formatDate(o.DeliveryDate),
		DeliveryAddress:     o.DeliveryAddress,
		Phone:               o.Phone,
		Notes:               o.Notes,
		AdminNotes:          o.AdminNotes,
		TotalAmount:         o.TotalAmount,
		ApprovedTotalAmount: o.ApprovedTotalAmount,
		BillID:              o.BillID,
		CreatedAt:           o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, &api.OrderItem{
			ID:                it.ID,
			ItemID:            it.ItemID,
			ItemName:          it.ItemName,
			RequestedQuantity: it.RequestedQuantity,
			RequestedPrice:    it.RequestedPrice,
			ApprovedQuantity:  it.ApprovedQuantity,
			ApprovedPrice:     it.ApprovedPrice,
			Discount:          it.Discount,
			RequestedTotal:    it.RequestedTotal,
			ApprovedTotal:     it.ApprovedTotal,
		})
	}
	return out
}

func toAPIDenominations(d models.Denominations) *api.Denominations {
	return &api.Denominations{
		C500: d.C500, C200: d.C200, C100: d.C100, C50: d.C50, C20: d.C20, C10: d.C10,
		Coin20: d.Coin20, Coin10: d.Coin10, Coin5: d.Coin5, Coin2: d.Coin2, Coin1: d.Coin1,
	}
}

func fromAPIDenominations(d api.Denominations) models.Denominations {
	return models.Denominations{
		C500: d.C500, C200: d.C200, C100: d.C100, C50: d.C50, C20: d.C20, C10: d.C10,
		Coin20: d.Coin20, Coin10: d.Coin10, Coin5: d.Coin5, Coin2: d.Coin2, Coin1: d.Coin1,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        formatDate(e.Date),
	}
}

func toAPICompanyDue(d models.CompanyDue) *api.CompanyDue {
	return &api.CompanyDue{
		CompanyID:    d.CompanyID,
		CompanyName:  d.CompanyName,
		TotalInvoice: d.TotalInvoice,
		TotalPaid:    d.TotalPaid,
		TotalDue:     d.TotalDue,
		LastUpdated:  formatDate(d.LastUpdated),
	}
}

func toAPIStockLines(lines []models.StockLine) []*api.StockLine {
	out := make([]*api.StockLine, len(lines))
	for i, l := range lines {
		out[i] = &api.StockLine{
			ItemID:        l.ItemID,
			ItemName:      l.ItemName,
			CompanyName:   l.CompanyName,
			StockQuantity: l.StockQuantity,
			StockValue:    l.StockValue,
			SoldQuantity:  l.SoldQuantity,
		}
	}
	return out
}

func toAPISalesRow(r models.SalesRow) *api.SalesRow {
	return &api.SalesRow{
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		ShopName:     r.ShopName,
		Bills:        r.Bills,
		Liters:       r.Liters,
		Sales:        r.Sales,
		Paid:         r.Paid,
		Profit:       r.Profit,
		Due:          r.Due,
	}
}
