// errors.go: comprehensive error handling for arena operations
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error
// codes for all arena operations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package arena

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for Arena operations.
const (
	// Configuration errors
	ErrCodeInvalidBitArrayLen errors.ErrorCode = "ARENA_INVALID_BITARRAY_LEN"
	ErrCodeInvalidGrowthStep  errors.ErrorCode = "ARENA_INVALID_GROWTH_STEP"

	// Operation errors
	ErrCodeOutOfCapacity errors.ErrorCode = "ARENA_OUT_OF_CAPACITY"

	// Internal errors
	ErrCodeRefcountOverflow errors.ErrorCode = "ARENA_REFCOUNT_OVERFLOW"
)

// Common error messages
const (
	msgInvalidBitArrayLen = "invalid BitArrayLen: must be between 1 and 31"
	msgInvalidGrowthStep  = "invalid MaxGrowthStep: must be at least 1"
	msgOutOfCapacity      = "arena is out of capacity: 32-bit key space exhausted"
	msgRefcountOverflow   = "slot refcount saturated: unrecoverable, aborting"
)

// NewErrInvalidBitArrayLen creates an error for an out-of-range
// Config.BitArrayLen.
func NewErrInvalidBitArrayLen(bitArrayLen int) error {
	return errors.NewWithContext(ErrCodeInvalidBitArrayLen, msgInvalidBitArrayLen, map[string]interface{}{
		"provided_bit_array_len": bitArrayLen,
		"valid_range":            "1-31",
	})
}

// NewErrInvalidGrowthStep creates an error for an out-of-range
// Config.MaxGrowthStep.
func NewErrInvalidGrowthStep(growthStep int) error {
	return errors.NewWithContext(ErrCodeInvalidGrowthStep, msgInvalidGrowthStep, map[string]interface{}{
		"provided_growth_step": growthStep,
		"minimum_required":     1,
	})
}

// NewErrOutOfCapacity creates an error when the arena cannot grow any
// further because the bucket index would overflow the bits remaining in
// the 32-bit key after BitArrayLen is subtracted.
func NewErrOutOfCapacity(currentBuckets int, slotsPerBucket uint32) error {
	return errors.NewWithContext(ErrCodeOutOfCapacity, msgOutOfCapacity, map[string]interface{}{
		"current_buckets":  currentBuckets,
		"slots_per_bucket": slotsPerBucket,
	})
}

// NewErrRefcountOverflow creates the error carried by the panic raised
// when a slot's refcount would exceed its representable range. This is
// unrecoverable: recovering would require a pessimistic overflow check on
// every clone, unacceptable on the hot path, so the process aborts instead
// of returning this value to a caller.
func NewErrRefcountOverflow() error {
	return errors.NewWithContext(ErrCodeRefcountOverflow, msgRefcountOverflow, nil).
		WithSeverity("critical")
}

// IsOutOfCapacity reports whether err is an out-of-capacity error.
func IsOutOfCapacity(err error) bool {
	return errors.HasCode(err, ErrCodeOutOfCapacity)
}

// IsRetryable reports whether err may succeed if the caller retries the
// operation. None of this package's own errors are currently marked
// retryable: ErrCodeOutOfCapacity as constructed by NewErrOutOfCapacity
// always reflects true 32-bit key-space exhaustion (the arena's grow
// already retries transient bucket-vector races internally before ever
// producing this error), not a transient condition a caller could wait
// out. The check still walks the errors.Retryable interface so a caller
// wrapping one of these with additional context via go-errors does not
// lose an AsRetryable() marking applied further up the chain.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeInvalidBitArrayLen || code == ErrCodeInvalidGrowthStep
	}
	return false
}

// GetErrorCode extracts the error code from an error, or "" if err does
// not carry one.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts the structured context map from an error, or
// nil if err is not a *errors.Error.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var arenaErr *errors.Error
	if goerrors.As(err, &arenaErr) {
		return arenaErr.Context
	}
	return nil
}
