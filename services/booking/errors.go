package booking

import "errors"

// Typed booking failures. Contention and validation outcomes are expected and
// recoverable by the caller; they are never conflated with storage faults.
var (
	// ErrSlotNotFound: the booking intent names a slot that does not exist.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotExpired: the slot's start time is not strictly after the request time.
	ErrSlotExpired = errors.New("slot is in the past")
	// ErrSlotTaken: another booking won the slot first. The caller should pick
	// a different slot; retrying the same one cannot succeed.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrPatientNotFound: the booking intent names an unknown patient.
	ErrPatientNotFound = errors.New("patient not found")
	// ErrNotAuthorized: the acting principal may not book for this patient.
	ErrNotAuthorized = errors.New("not authorized to book for this patient")
	// ErrInvalidDate: the caller supplied a date outside the YYYY-MM-DD wire format.
	ErrInvalidDate = errors.New("invalid date")
)
