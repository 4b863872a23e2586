// Package services defines the shared contracts every lookup service
// implements, plus the record-status taxonomy used by the policy parsers.
package services

import (
	"context"

	"github.com/mailposture/mailposture/internal/apperr"
)

// ErrInvalidInput is re-exported from apperr so service packages and their
// tests can use errors.Is(err, services.ErrInvalidInput) without importing
// the leaf package directly.
var ErrInvalidInput = apperr.ErrInvalidInput

// ErrRequestFailed is re-exported from apperr. See apperr.ErrRequestFailed.
var ErrRequestFailed = apperr.ErrRequestFailed

// ErrAuthRejected is re-exported from apperr. See apperr.ErrAuthRejected.
var ErrAuthRejected = apperr.ErrAuthRejected

// ErrNotFound is re-exported from apperr. See apperr.ErrNotFound.
var ErrNotFound = apperr.ErrNotFound

// RecordStatus classifies a parsed policy record.
type RecordStatus string

// Record statuses shared by the policy parsers. Missing means the record is
// absent (expected, not exceptional); Invalid means present but malformed per
// its RFC; Warning means valid but with a flagged defect (e.g. SPF over the
// lookup limit).
const (
	StatusMissing RecordStatus = "missing"
	StatusInvalid RecordStatus = "invalid"
	StatusValid   RecordStatus = "valid"
	StatusWarning RecordStatus = "warning"
	StatusError   RecordStatus = "error"
)

// Result is the common interface every service's Run output must satisfy.
type Result interface {
	IsEmpty() bool
}

// NotFounder is implemented by results that can report a negative lookup
// (record or reverse name absent). The audit orchestrator uses it to drive
// items into the not_found terminal state instead of success.
type NotFounder interface {
	NotFound() bool
}

// Service is the contract every mailposture lookup service implements.
type Service interface {
	Name() string
	Run(ctx context.Context, input string) (Result, error)
	AggregateResults(results []Result) Result
}
