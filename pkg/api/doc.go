// Package api defines the request and response messages of the milkagency
// RPC services. Messages travel as JSON over the Connect protocol; money
// and liters are decimal strings, business dates are YYYY-MM-DD.
package api
