package application

import "errors"

// Business errors returned by the application services. Handlers translate
// these to HTTP statuses; anything else bubbles up as a 500.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrNotADriver          = errors.New("user is not a driver")
	ErrDriverNotFound      = errors.New("driver profile not found")
	ErrDriverProfileExists = errors.New("driver profile already exists")

	ErrRideNotFound        = errors.New("ride not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrRideAlreadyAssigned = errors.New("ride already has a driver")
	ErrNotRideRequester    = errors.New("unauthorized to rate this ride")
	ErrRideNotCompleted    = errors.New("can only rate completed rides")
	ErrAlreadyRated        = errors.New("ride has already been rated")
)
