// Package common defines shared constants and sentinel errors used across
// client and server layers of batiknft. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth / transport errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("service unavailable")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Wallet provider errors.
	ErrWalletUnavailable = errors.New("wallet unavailable")
	ErrWalletLocked      = errors.New("wallet locked")

	// Pinning / retrieval errors.
	ErrUploadFailed        = errors.New("upload failed")
	ErrUploadRejected      = errors.New("upload rejected")
	ErrMetadataUnavailable = errors.New("metadata unavailable")

	// Ledger errors. Rejected covers failures before inclusion (estimation,
	// signing, broadcast); reverted means the transaction was mined with a
	// failed status.
	ErrTransactionRejected = errors.New("transaction rejected")
	ErrTransactionReverted = errors.New("transaction reverted")

	// Validation errors.
	ErrInvalidPrice       = errors.New("invalid price")
	ErrIncompleteMetadata = errors.New("incomplete metadata")
	ErrInvalidSerial      = errors.New("invalid serial number")
	ErrSequenceOutOfRange = errors.New("sequence out of range")
)
