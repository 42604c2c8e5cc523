package organictrace

import "errors"

// Sentinel errors for the ledger call surface. Every error is detected
// synchronously before any mutation: a failed call applies no state change.
var (
	// Authorization gate failures
	ErrUnauthorized = errors.New("organictrace: unauthorized")
	ErrNotOwner     = errors.New("organictrace: caller is not the current owner")

	// Batch registry failures
	ErrInvalidHash     = errors.New("organictrace: integrity hash is empty")
	ErrBatchExists     = errors.New("organictrace: batch id already exists")
	ErrInvalidID       = errors.New("organictrace: referenced record does not exist")
	ErrMetadataTooLong = errors.New("organictrace: metadata exceeds configured maximum")

	// Write-once key failures
	ErrAlreadyRegistered = errors.New("organictrace: key already registered")

	// Validation failures
	ErrInvalidPercentage  = errors.New("organictrace: percentage outside 1-100")
	ErrTooManyTags        = errors.New("organictrace: too many tags")
	ErrTooManyPermissions = errors.New("organictrace: too many permission labels")

	// Store failures
	ErrStoreClosed     = errors.New("organictrace: store is closed")
	ErrMigrationFailed = errors.New("organictrace: migration failed")
)

// IsNotFound reports whether the error denotes an absent batch or sub-record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrInvalidID)
}

// IsAuthFailure reports whether the error denotes a failed authorization gate.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotOwner)
}

// IsValidation reports whether the error denotes rejected call input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidHash) ||
		errors.Is(err, ErrMetadataTooLong) ||
		errors.Is(err, ErrInvalidPercentage) ||
		errors.Is(err, ErrTooManyTags) ||
		errors.Is(err, ErrTooManyPermissions)
}
