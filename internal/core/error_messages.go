package core

// error_messages.go maps technical errors to user-facing messages with codes
// that can be quoted to support.
//
// # Date Errors (DATE001-DATE099)
//
//	DATE001 - Unrecognized date: the text does not have the requested shape
//	          Action: Enter the date exactly as the pattern shows, e.g. 07/25/1984
//	          Sentinel: ErrUnrecognizedDateFormat
//
//	DATE002 - Impossible date: the date does not exist in the calendar
//	          Action: Check the day and month, e.g. February has 28 or 29 days
//	          Sentinel: ErrImpossibleDate
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Malformed identifier: the vendor id is not a whole number
//	VAL002 - Malformed row: a row does not have four comma-separated fields
//	VAL003 - Required field: a vendor field is empty
//
// # Storage Errors (SRC001, SNK001, DB001-DB099)
//
//	SRC001 - Source unavailable: the vendor file or table could not be read
//	SRC002 - Corrupt source: a stored row could not be decoded
//	SNK001 - Sink unavailable: the new vendor could not be written
//	DB004  - Connection refused (pattern "connection refused")
//	DB005  - Connection reset (pattern "connection reset")
//	DB006  - Timeout (pattern "timeout", "context deadline exceeded")
//
// # Default Error (ERR000)
//
// Sentinels are checked first with errors.Is, in declaration order. A failed
// load reports SRC002 even though it also wraps the DATE00x or VAL00x cause,
// since the fix is in the stored data and not in the caller's input. Text patterns are matched case-insensitively with
// strings.Contains as a fallback for errors from drivers and the OS.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	err error
	msg UserMessage
}

var sentinelMessages = []sentinelMessage{
	{
		err: ErrCorruptSource,
		msg: UserMessage{
			Message: "Stored vendor data contains a row that cannot be read",
			Action:  "Fix or remove the row named in the logs, or set VENDORS_DECODE_POLICY=skip",
			Code:    "SRC002",
		},
	},
	{
		err: ErrUnrecognizedDateFormat,
		msg: UserMessage{
			Message: "The date does not have the expected format",
			Action:  "Enter the date exactly as the pattern shows, e.g. 25/07/1984 for dd/mm/yyyy",
			Code:    "DATE001",
		},
	},
	{
		err: ErrImpossibleDate,
		msg: UserMessage{
			Message: "The date does not exist in the calendar",
			Action:  "Check the day and month values",
			Code:    "DATE002",
		},
	},
	{
		err: ErrMalformedIdentifier,
		msg: UserMessage{
			Message: "The vendor id is not a whole number",
			Action:  "Use digits only for the id",
			Code:    "VAL001",
		},
	},
	{
		err: ErrMalformedRow,
		msg: UserMessage{
			Message: "A vendor row does not have four fields",
			Action:  "Check the file for extra or missing commas",
			Code:    "VAL002",
		},
	},
	{
		err: ErrInvalidVendor,
		msg: UserMessage{
			Message: "Required vendor field is empty",
			Action:  "Provide a name, a region and a valid birth date",
			Code:    "VAL003",
		},
	},
	{
		err: ErrSourceUnavailable,
		msg: UserMessage{
			Message: "Vendor data could not be read",
			Action:  "Check that the vendor file exists and is readable",
			Code:    "SRC001",
		},
	},
	{
		err: ErrSinkUnavailable,
		msg: UserMessage{
			Message: "The vendor could not be saved",
			Action:  "Check that the output file is writable and try again",
			Code:    "SNK001",
		},
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// The first matching pattern wins.
var errorPatterns = []errorPattern{
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError returns "<message> (Code: <code>). <action>" for err.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the default.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Underlying error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError wraps err with its mapped user message. Returns nil for nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
