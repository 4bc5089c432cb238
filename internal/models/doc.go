// Package models defines the core domain models for the milk agency back office.
//
// # Ledger
//
// A customer's balance is derived from an append-only ledger:
//   - Bill: an invoice; its TotalAmount is a debit against the customer
//   - CustomerPayment: a credit, counted only while its Status is SUCCESS
//
// Customer.Due is a cached projection of that ledger. It is rewritten in the
// same transaction as every ledger mutation and is never edited directly.
//
// # Commission
//
// MonthlyCommission records the rebate a commissioned retailer earned in a
// month. A record is consumed by at most one bill (Deducted flips to true).
//
// # Conventions
//
//  1. IDs are UUID strings; relationships are referenced by ID, not pointer
//  2. Money and liters use decimal.Decimal, never float64
//  3. Timestamps are Unix seconds; business dates (invoice date, expense
//     date) are civil dates carried as time.Time at midnight UTC
package models
