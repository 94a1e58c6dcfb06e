package main

import (
	"context"
	"errors"

	"orr-overpotential/internal/electrochem"
	"orr-overpotential/internal/observability"
)

// initTelemetry initialises the OTLP providers when enabled and the
// application metric instruments. With OTLP disabled the instruments record
// into the global no-op meter provider.
func initTelemetry(ctx context.Context, otlp bool) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if otlp {
		for _, start := range []func(context.Context) (func(context.Context) error, error){
			observability.InitTracing,
			observability.InitLogging,
			observability.InitMetrics,
		} {
			s, err := start(ctx)
			if err != nil {
				_ = shutdown(ctx)
				return nil, err
			}
			shutdowns = append(shutdowns, s)
		}
	}

	if err := electrochem.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
