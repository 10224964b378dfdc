package app

import "errors"

var (
	// ErrNotFound is returned when the requested entity id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed or missing required fields.
	// Call sites wrap it with a field-specific message.
	ErrValidation = errors.New("validation failed")

	// ErrPropertyOccupied is returned when a lease is created on a property
	// that already carries an active lease.
	ErrPropertyOccupied = errors.New("property is already occupied")

	// ErrLeaseNotArchived guards hard deletes: a lease must be archived first.
	ErrLeaseNotArchived = errors.New("lease must be archived before deletion")

	// ErrInvalidCredentials is returned when the supplied credentials do not match.
	// The message is shown to end users and must not enable account enumeration.
	ErrInvalidCredentials = errors.New("incorrect email address or password")

	ErrUserDisabled       = errors.New("user account is disabled")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNotACaretaker is returned when a maintenance assignment targets a
	// user whose role is not Caretaker.
	ErrNotACaretaker = errors.New("assigned user is not a caretaker")
)
