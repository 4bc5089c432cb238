package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/milkagency/internal/blob"
	"github.com/mmynk/milkagency/internal/invoice"
	"github.com/mmynk/milkagency/internal/models"
	"github.com/mmynk/milkagency/internal/storage"
)

// InvoiceArchive renders bill PDFs and keeps them in a blob store.
type InvoiceArchive struct {
	store    storage.Store
	renderer *invoice.Renderer
	blobs    blob.Store
}

func NewInvoiceArchive(store storage.Store, renderer *invoice.Renderer, blobs blob.Store) *InvoiceArchive {
	return &InvoiceArchive{store: store, renderer: renderer, blobs: blobs}
}

func (a *InvoiceArchive) render(ctx context.Context, bill *models.Bill) ([]byte, error) {
	doc := invoice.Document{Bill: bill, MRP: make(map[string]decimal.Decimal)}
	if bill.CustomerID != "" {
		customer, err := a.store.GetCustomer(ctx, bill.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load customer: %w", err)
		}
		doc.Customer = customer
	}
	for _, line := range bill.Items {
		if _, ok := doc.MRP[line.ItemID]; ok {
			continue
		}
		item, err := a.store.GetItem(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load item: %w", err)
		}
		doc.MRP[line.ItemID] = item.MRP
	}
	return a.renderer.Render(doc)
}

// Archive renders the bill and stores it under its archive key,
// replacing any earlier rendering.
func (a *InvoiceArchive) Archive(ctx context.Context, bill *models.Bill) error {
	data, err := a.render(ctx, bill)
	if err != nil {
		return err
	}
	key := invoice.ArchiveKey(bill)
	if err := a.blobs.Put(ctx, key, "application/pdf", data); err != nil {
		return fmt.Errorf("failed to store invoice: %w", err)
	}
	slog.Debug("Invoice archived", "bill_id", bill.ID, "key", key)
	return nil
}

// Load returns the PDF for a bill, rendering and storing it first if it
// was never archived. Callers authorize access to the bill beforehand.
func (a *InvoiceArchive) Load(ctx context.Context, bill *models.Bill) ([]byte, error) {
	data, err := a.blobs.Get(ctx, invoice.ArchiveKey(bill))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, blob.ErrNotExist) {
		return nil, fmt.Errorf("failed to read invoice: %w", err)
	}

	if err := a.Archive(ctx, bill); err != nil {
		return nil, err
	}
	data, err = a.blobs.Get(ctx, invoice.ArchiveKey(bill))
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice: %w", err)
	}
	return data, nil
}
