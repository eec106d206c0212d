package feed

import (
	"errors"
	"fmt"
)

var (
	// ErrBadResponse indicates the feed answered with a non-200 status.
	ErrBadResponse = errors.New("failed to fetch products")

	// ErrBadPayload indicates the feed body is not a products snapshot.
	ErrBadPayload = errors.New("malformed products payload")
)

// NetworkError wraps a transport failure talking to the feed.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError carries the unexpected status code. It matches ErrBadResponse.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d - %s", ErrBadResponse, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrBadResponse
}

// ErrBadRecord indicates a single malformed entry inside a valid snapshot.
var ErrBadRecord = errors.New("malformed product record")

// EntryError is a feed entry that could not be decoded. It matches
// ErrBadRecord.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s at index %d: %v", ErrBadRecord, e.Index, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

func (e *EntryError) Is(target error) bool {
	return target == ErrBadRecord
}
