package apperr

import "errors"

// ErrInvalidInput is returned by any service when the provided input fails validation.
// Use errors.Is(err, apperr.ErrInvalidInput) to detect validation failures uniformly
// across all services.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequestFailed is returned by any HTTP-based service when the request fails at the
// transport level or the server responds with a non-2xx status code.
// Use errors.Is(err, apperr.ErrRequestFailed) to detect request failures uniformly
// across all services.
var ErrRequestFailed = errors.New("request failed")

// ErrNotFound is returned when a lookup succeeds but the target or record does not
// exist (NXDOMAIN, empty answer where presence is required). It is an expected
// condition, not a transport failure.
var ErrNotFound = errors.New("not found")

// ErrAuthRejected is returned when a blocklist query is answered with the zone's
// error sentinel, meaning the query key was rejected. It must never be collapsed
// into a "listed" or "not listed" verdict: an auth failure says nothing about
// the target's reputation.
var ErrAuthRejected = errors.New("query key rejected")
