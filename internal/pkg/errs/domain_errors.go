package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Room errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room unavailable")

	// Reservation errors
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrAlreadyCancelled     = errors.New("reservation already cancelled")
	ErrReservationCancelled = errors.New("reservation is cancelled")

	// Voucher errors
	ErrVoucherNotFound         = errors.New("voucher not found")
	ErrVoucherAlreadyConfirmed = errors.New("voucher already confirmed")
	ErrExtractionFailed        = errors.New("voucher extraction failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
