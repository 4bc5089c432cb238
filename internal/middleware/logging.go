package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC.
// Client errors log at warn; internal and unknown errors log at error with the full cause.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx),
				"role", GetRole(ctx),
				"peer", req.Peer().Addr,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch code := connect.CodeOf(err); {
			case err == nil:
				slog.InfoContext(ctx, "RPC ok", attrs...)
			case code == connect.CodeInternal || code == connect.CodeUnknown:
				slog.ErrorContext(ctx, "RPC failed", append(attrs, "error", err)...)
			default:
				slog.WarnContext(ctx, "RPC rejected", append(attrs, "code", code.String(), "error", connectMessage(err))...)
			}
			return resp, err
		}
	}
}

func connectMessage(err error) string {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Message()
	}
	return err.Error()
}
