package booking

import "errors"

var (
	// ErrInvalidStatus is returned when a transition targets an unrecognized
	// status value. The current status and history are left untouched.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidRating is returned when a review rating falls outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrMissingActor is returned when a lifecycle operation is invoked
	// without an actor reference.
	ErrMissingActor = errors.New("actor reference is required")

	// ErrNoDispute is returned when resolving a booking that has no dispute.
	ErrNoDispute = errors.New("no dispute on booking")
)
