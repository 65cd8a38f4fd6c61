package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"log"
	"net"
	"time"

	"flowerStore/models"

	"github.com/lib/pq"
	"github.com/sony/gobreaker/v2"
)

// StoreBreaker guards every call to the remote store. Only connectivity
// failures count towards tripping it; rejected statements mean the store
// is up.
type StoreBreaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

type BreakerSettings struct {
	Name             string
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func NewStoreBreaker(s BreakerSettings) *StoreBreaker {
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 5
	}
	if s.OpenTimeout == 0 {
		s.OpenTimeout = 30 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			var gone callerGoneError
			if errors.As(err, &gone) {
				return true
			}
			return err == nil || !isConnectivityError(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("StoreBreaker %s: %s -> %s", name, from, to)
		},
	})
	return &StoreBreaker{cb: cb}
}

// callerGoneError marks a failure that happened after the caller's context
// ended. It says nothing about the store's health.
type callerGoneError struct {
	err error
}

func (e callerGoneError) Error() string { return e.err.Error() }
func (e callerGoneError) Unwrap() error { return e.err }

// Do runs fn through the breaker. Failures seen once ctx is done do not
// count against the store.
func (b *StoreBreaker) Do(ctx context.Context, fn func() error) error {
	_, err := b.cb.Execute(func() (any, error) {
		err := fn()
		if err != nil && ctx.Err() != nil {
			return nil, callerGoneError{err: err}
		}
		return nil, err
	})
	return err
}

func (b *StoreBreaker) State() gobreaker.State {
	return b.cb.State()
}

// storeError maps a raw store error onto the sentinel a caller can act on.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	var gone callerGoneError
	if errors.As(err, &gone) {
		return models.ErrServerError
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) || isConnectivityError(err) {
		return models.ErrUnavailable
	}
	return models.ErrServerError
}

// isConnectivityError reports whether err says the store could not be
// reached. A caller that gave up is not a store failure.
func isConnectivityError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// class 08: connection exception
		return pqErr.Code.Class() == "08"
	}
	var netErr net.Error
	switch {
	case errors.As(err, &netErr):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	return false
}

// ignoreInvalidId treats an id that is not a uuid like an id that matches no
// row.
func ignoreInvalidId(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
		log.Printf("ignoreInvalidId: %v", err)
		return nil
	}
	return err
}
