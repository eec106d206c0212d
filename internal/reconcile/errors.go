package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a feed record that cannot be matched to a product.
	ErrNotFound = errors.New("not found")

	// ErrSyncDisabled indicates the enable flag is off.
	ErrSyncDisabled = errors.New("sync is disabled")

	// ErrFeedNotConfigured indicates no feed URL is configured.
	ErrFeedNotConfigured = errors.New("feed url is not configured")
)

// FatalRunError aborts a whole run before anything is mutated.
type FatalRunError struct {
	Stage State
	Err   error
}

func (e *FatalRunError) Error() string {
	return fmt.Sprintf("sync failed while %s: %v", e.Stage, e.Err)
}

func (e *FatalRunError) Unwrap() error {
	return e.Err
}

// RecordError is a failure isolated to one feed record.
type RecordError struct {
	SKU string
	Op  string
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s: %s: %v", e.SKU, e.Op, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// CategoryError is a failed category lookup or creation.
type CategoryError struct {
	Name string
	Err  error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category %q: %v", e.Name, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// BatchCommitError is a failed stock batch save.
type BatchCommitError struct {
	Count int
	Err   error
}

func (e *BatchCommitError) Error() string {
	return fmt.Sprintf("failed to save %d source items: %v", e.Count, e.Err)
}

func (e *BatchCommitError) Unwrap() error {
	return e.Err
}

// IndexError is a failed refresh of a single index.
type IndexError struct {
	IndexerID string
	Err       error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %s: %v", e.IndexerID, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}
