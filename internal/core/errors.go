package core

import "errors"

// Sentinel errors. Operations wrap these with context using %w;
// test for them with errors.Is.
var (
	// ErrUnrecognizedDateFormat means the text does not have the shape of the
	// requested date pattern.
	ErrUnrecognizedDateFormat = errors.New("unrecognized date format")

	// ErrImpossibleDate means the text has the right shape but names a day
	// that does not exist, such as 31/02/2020.
	ErrImpossibleDate = errors.New("impossible date")

	// ErrMalformedIdentifier means the id field of a row is not an integer.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrMalformedRow means a row could not be split into the four fields.
	ErrMalformedRow = errors.New("malformed row")

	// ErrInvalidVendor means a vendor was constructed with missing fields.
	ErrInvalidVendor = errors.New("invalid vendor")

	// ErrCorruptSource means the source was read but a stored row could not
	// be decoded under DecodeAbort.
	ErrCorruptSource = errors.New("corrupt vendor source")

	ErrSourceUnavailable = errors.New("vendor source unavailable")
	ErrSinkUnavailable   = errors.New("vendor sink unavailable")
)
