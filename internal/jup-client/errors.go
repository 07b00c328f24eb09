package jupclient

import (
	"errors"
	"fmt"
)

var (
	ErrExhaustedRetries = errors.New("all attempts to fetch transactions have failed")
	ErrForbidden        = errors.New("access to the jupiter api was forbidden")
)

// FetchError is a transient failure of a single attempt. It is retried.
type FetchError struct {
	Wallet  string
	Attempt int
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s attempt %d: %s", e.Wallet, e.Attempt, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type ExhaustedRetriesError struct {
	Wallet   string
	Attempts int
	Last     error
}

func (e *ExhaustedRetriesError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("wallet %s: all %d attempts to fetch data from the jupiter api have failed",
			e.Wallet, e.Attempts)
	}

	return fmt.Sprintf("wallet %s: all %d attempts to fetch data from the jupiter api have failed: %s",
		e.Wallet, e.Attempts, e.Last)
}

func (e *ExhaustedRetriesError) Is(target error) bool {
	return target == ErrExhaustedRetries
}

func (e *ExhaustedRetriesError) Unwrap() error {
	return e.Last
}

// StatusError is returned for non-2xx responses that are not retried.
type StatusError struct {
	Wallet     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wallet %s: unexpected status %d", e.Wallet, e.StatusCode)
}
