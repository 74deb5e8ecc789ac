package model

import "errors"

var (
	// ErrCapabilityUnavailable means no provider is configured for a capability.
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrCapabilityFailure means a provider call failed or returned unusable output.
	ErrCapabilityFailure = errors.New("capability failure")

	// ErrSchemaMismatch means an imported snapshot did not match the record schema.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrKeyNotFound means a corpus key does not exist.
	ErrKeyNotFound = errors.New("key not found")
)
