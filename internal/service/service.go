// Package service implements the Connect handlers. Handlers validate the
// request, check the caller's role, call storage and translate storage
// errors into Connect codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/milkagency/internal/auth"
	"github.com/mmynk/milkagency/internal/cache"
	"github.com/mmynk/milkagency/internal/middleware"
	"github.com/mmynk/milkagency/internal/storage"
	"github.com/mmynk/milkagency/pkg/api"
)

const dateLayout = "2006-01-02"

// connectError maps storage sentinels to Connect codes. Unknown errors
// become Internal.
func connectError(err error) error {
	var ce *connect.Error
	switch {
	case errors.As(err, &ce):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrDuplicateTransaction), errors.Is(err, storage.ErrDuplicate):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrEmptyBill):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrFrozen), errors.Is(err, storage.ErrAlreadyDeducted),
		errors.Is(err, storage.ErrInvalidState), errors.Is(err, storage.ErrCounterPayment):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, cache.ErrNotObtained):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func validate(msg any) error {
	if err := api.Validate(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

func requireAdmin(ctx context.Context) error {
	switch middleware.GetRole(ctx) {
	case auth.RoleAdmin:
		return nil
	case "":
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	default:
		return connect.NewError(connect.CodePermissionDenied, errors.New("admin access required"))
	}
}

func requireCustomer(ctx context.Context) error {
	switch middleware.GetRole(ctx) {
	case auth.RoleCustomer:
		return nil
	case "":
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	default:
		return connect.NewError(connect.CodePermissionDenied, errors.New("customer access required"))
	}
}

func isCustomer(ctx context.Context) bool {
	return middleware.GetRole(ctx) == auth.RoleCustomer
}

// ownerOr returns the caller's customer ID for customers, and requested for staff.
func ownerOr(ctx context.Context, requested string) string {
	if isCustomer(ctx) {
		return middleware.GetUserID(ctx)
	}
	return requested
}

// parseDate reads a YYYY-MM-DD field; empty means zero time.
func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s: %w", field, err))
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// monthOrCurrent fills a zero year/month with now's.
func monthOrCurrent(year, month int, now time.Time) (int, int) {
	if year == 0 || month == 0 {
		return now.Year(), int(now.Month())
	}
	return year, month
}

// lockCustomers takes the billing lock of every distinct customer in a
// fixed order and returns a func releasing them all.
func lockCustomers(ctx context.Context, locker cache.Locker, ids ...string) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	seen := make(map[string]bool)
	var keys []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, "customer:"+id)
	}
	sort.Strings(keys)

	var unlocks []func()
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, key := range keys {
		unlock, err := locker.Lock(ctx, key, 30*time.Second)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
