package kit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Endpoint is a transport-agnostic action function.
// Each action (match, explain, list) is an Endpoint.
// HTTP handlers and MCP tools both dispatch to the same Endpoints.
type Endpoint func(ctx context.Context, request any) (response any, err error)

// Middleware wraps an Endpoint with cross-cutting concerns (logging, metrics).
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first is outermost.
// Chain(a, b, c)(endpoint) == a(b(c(endpoint)))
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(others) - 1; i >= 0; i-- {
			next = others[i](next)
		}
		return outer(next)
	}
}

// Logging logs every call of the named endpoint at debug level, and
// failures at warn level.
func Logging(logger *slog.Logger, name string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			attrs := []any{
				"endpoint", name,
				"transport", GetTransport(ctx),
				"request_id", GetRequestID(ctx),
				"duration", time.Since(start),
			}
			if list := GetList(ctx); list != "" {
				attrs = append(attrs, "list", list)
			}
			if err != nil {
				logger.Warn("endpoint failed", append(attrs, "error", err)...)
			} else {
				logger.Debug("endpoint served", attrs...)
			}
			return resp, err
		}
	}
}

// ErrPanic wraps the value recovered by [Recover].
var ErrPanic = errors.New("endpoint panic")

// Recover turns a panic inside the endpoint into an error wrapping ErrPanic
// so one bad request cannot take down the server or the MCP session.
func Recover() Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (resp any, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp, err = nil, fmt.Errorf("%w: %v", ErrPanic, r)
				}
			}()
			return next(ctx, request)
		}
	}
}
