package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/milkagency/internal/auth"
	"github.com/mmynk/milkagency/internal/calculator"
	"github.com/mmynk/milkagency/internal/middleware"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/report"
	"github.com/mmynk/milkagency/internal/service"
	"github.com/mmynk/milkagency/internal/storage"
)

// downloadHandler serves generated files. Routes are mounted behind
// RequireAuthHTTP so the principal is always set.
type downloadHandler struct {
	bills   billGetter
	archive *service.InvoiceArchive
	reports *service.ReportService
	now     func() time.Time
}

type billGetter interface {
	GetBill(ctx context.Context, id string) (*models.Bill, error)
}

// bill serves an invoice PDF. Customers may only fetch their own live bills.
func (h *downloadHandler) bill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bill, err := h.bills.GetBill(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("Failed to get bill", "bill_id", id, "error", err)
		http.Error(w, "failed to load invoice", http.StatusInternalServerError)
		return
	}
	if middleware.GetRole(r.Context()) != auth.RoleAdmin &&
		(bill.CustomerID != middleware.GetUserID(r.Context()) || bill.DeletedAt != 0) {
		http.NotFound(w, r)
		return
	}

	data, err := h.archive.Load(r.Context(), bill)
	if err != nil {
		slog.Error("Failed to load invoice", "bill_id", id, "error", err)
		http.Error(w, "failed to load invoice", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", bill.InvoiceNumber+".pdf"))
	_, _ = w.Write(data)
}

// monthlySales serves the monthly sales workbook. Admin only.
func (h *downloadHandler) monthlySales(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r.Context()) != auth.RoleAdmin {
		http.Error(w, "admin access required", http.StatusForbidden)
		return
	}

	year, month, err := h.month(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.reports.SalesWorkbook(r.Context(), year, month)
	if err != nil {
		slog.Error("Failed to build sales workbook", "year", year, "month", month, "error", err)
		http.Error(w, "failed to build workbook", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(year, month)))
	_, _ = w.Write(data)
}

// month reads year and month from the query, defaulting to the previous month.
func (h *downloadHandler) month(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	if q.Get("year") == "" && q.Get("month") == "" {
		now := time.Now
		if h.now != nil {
			now = h.now
		}
		year, month := calculator.PreviousMonth(now())
		return year, month, nil
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 2000 {
		return 0, 0, fmt.Errorf("invalid year %q", q.Get("year"))
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %q", q.Get("month"))
	}
	return year, month, nil
}
