package coingecko

import "fmt"

// FetchError is any failure talking to the upstream API: network errors,
// non-2xx statuses, or malformed payloads. Status is zero when no HTTP
// response was received.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("coingecko %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("coingecko %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
