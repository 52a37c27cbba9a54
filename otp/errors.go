package otp

import "errors"

var (
	// ErrEmailRequired means the caller did not supply an identity to send to.
	ErrEmailRequired = errors.New("email is required")

	// ErrDispatchFailed means the code was stored but could not be delivered.
	ErrDispatchFailed = errors.New("failed to dispatch one-time code")

	// ErrCodeNotFound means no pending code exists for the email. A code that
	// was evicted by the store after its TTL also surfaces as not found.
	ErrCodeNotFound = errors.New("one-time code not found or expired")

	// ErrCodeExpired means a pending code existed but its TTL had elapsed.
	// The record is removed as a side effect of detection.
	ErrCodeExpired = errors.New("one-time code expired")

	// ErrCodeMismatch means the submitted code did not match the stored one.
	// The stored code stays valid until it expires or is matched.
	ErrCodeMismatch = errors.New("one-time code does not match")
)
