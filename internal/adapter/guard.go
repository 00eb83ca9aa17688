// Package adapter holds the clients for the customer and credit services. Every
// outbound call goes through a Guard that bounds it with a timeout and a circuit
// breaker and folds unstable outcomes into a single ServiceUnavailable error.
package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/eaglebank/account-service/internal/config"
	"github.com/eaglebank/account-service/shared/apperr"
	"github.com/eaglebank/account-service/shared/logger"
	"github.com/sony/gobreaker"
)

type Guard struct {
	service string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
}

// NewGuard builds the guard for one downstream service. service is the display
// name used in the fallback message, e.g. "Customer".
func NewGuard(service string, settings config.BreakerSettings) *Guard {
	g := &Guard{service: service, timeout: settings.Timeout}
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        service,
		MaxRequests: settings.HalfOpenRequests,
		Interval:    settings.Interval,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureRatio
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", logger.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	return g
}

func (g *Guard) State() gobreaker.State {
	return g.breaker.State()
}

// Do runs call with a per-call deadline derived from ctx. Client errors
// (NotFound, BadRequest) and caller cancellation pass through unchanged; every
// other failure becomes apperr.ServiceUnavailable.
func (g *Guard) Do(ctx context.Context, call func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, call(callCtx)
	})
	if err == nil {
		return nil
	}

	if isClientError(err) {
		return err
	}
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return ctx.Err()
	}

	logger.Warn("downstream call failed", logger.Fields{
		"service": g.service,
		"error":   err.Error(),
	})
	return apperr.ServiceUnavailable(g.service)
}

func isClientError(err error) bool {
	kind := apperr.KindOf(err)
	return kind == apperr.KindNotFound || kind == apperr.KindBadRequest
}

// countsAsSuccess keeps 400/404 answers and caller cancellation out of the failure ratio.
func countsAsSuccess(err error) bool {
	return err == nil || isClientError(err) || errors.Is(err, context.Canceled)
}
