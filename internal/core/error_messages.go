package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to the timing
// team for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Race Errors (RACE001-RACE099)
//
//	RACE001 - Race not found: No result file exists for the date
//	          Action: Check the date or pick a race from the list
//	          Matches: *DataUnavailableError wrapping ErrNotFound
//
//	RACE002 - Load failed: The result file could not be retrieved
//	          Action: Please try again in a few moments
//	          Matches: any other *DataUnavailableError
//
//	RACE003 - No results: The result file has no rows
//	          Action: Pick another race from the list
//	          Matches: ErrNoResults
//
//	RACE004 - Invalid file: The result file is not valid CSV
//	          Action: Ask the timing team to export the file again
//	          Matches: ErrMalformedCSV
//
// # Index Errors (IDX001-IDX099)
//
//	IDX001 - Index unavailable: The race list could not be loaded
//	         Action: Please try again in a few moments
//	         Matches: ErrIndexUnavailable
//
//	IDX002 - No races: The race list is empty
//	         Action: Check back after the next race
//	         Matches: ErrNoRaces
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid date: The date is not YYYYMMDD
//	REQ002 - Invalid sort: Unknown sort column or direction
//	REQ003 - Request cancelled (pattern "context canceled")
//	REQ004 - Request timeout (pattern "context deadline exceeded")
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited (pattern "rate limit")
//	RATE002 - Source busy: every fetch slot stayed occupied (ErrTooManyFetches)
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check application logs for the original
// technical error when users report ERR000.
//
// # Matching
//
// Typed and sentinel errors are matched first with errors.As and errors.Is,
// in table order. Remaining errors are matched case-insensitively against
// text patterns; the first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// errorMatcher maps errors recognized by errors.Is/As to a user message.
type errorMatcher struct {
	match func(error) bool
	msg   UserMessage
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func unavailable(notFound bool) func(error) bool {
	return func(err error) bool {
		var du *DataUnavailableError
		return errors.As(err, &du) && du.NotFound() == notFound
	}
}

var errorMatchers = []errorMatcher{
	// Parse failures are checked before fetch failures so a malformed file
	// is never reported as a network problem.
	{match: is(ErrMalformedCSV), msg: UserMessage{
		Message: "The race file is not a valid CSV",
		Action:  "Ask the timing team to export the file again",
		Code:    "RACE004",
	}},
	{match: is(ErrTooManyFetches), msg: UserMessage{
		Message: "The race server is busy",
		Action:  "Please wait a moment and try again",
		Code:    "RATE002",
	}},
	{match: unavailable(true), msg: UserMessage{
		Message: "Race results not found",
		Action:  "Check the date or pick a race from the list",
		Code:    "RACE001",
	}},
	{match: unavailable(false), msg: UserMessage{
		Message: "Race results could not be loaded",
		Action:  "Please try again in a few moments",
		Code:    "RACE002",
	}},
	{match: is(ErrNoResults), msg: UserMessage{
		Message: "This race has no results",
		Action:  "Pick another race from the list",
		Code:    "RACE003",
	}},
	{match: is(ErrIndexUnavailable), msg: UserMessage{
		Message: "The race list could not be loaded",
		Action:  "Please try again in a few moments",
		Code:    "IDX001",
	}},
	{match: is(ErrNoRaces), msg: UserMessage{
		Message: "No races available",
		Action:  "Check back after the next race",
		Code:    "IDX002",
	}},
	{match: is(ErrInvalidDate), msg: UserMessage{
		Message: "Invalid race date",
		Action:  "Use the YYYYMMDD format, for example 20240315",
		Code:    "REQ001",
	}},
	{match: is(ErrInvalidSort), msg: UserMessage{
		Message: "Invalid sort column",
		Action:  "Click a column header to sort",
		Code:    "REQ002",
	}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages
// for errors that carry no sentinel, such as those from net/http.
var errorPatterns = []errorPattern{
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again in a few moments",
			Code:    "REQ004",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact the timing team",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Typed errors are matched first, then text patterns; unmatched errors
// get the ERR000 fallback.
//
// Example:
//
//	err := &DataUnavailableError{Date: "20240315", Err: ErrNotFound}
//	msg := MapError(err)
//	// msg.Code == "RACE001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, em := range errorMatchers {
		if em.match(err) {
			return em.msg
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

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
