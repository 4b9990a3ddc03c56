package core

// # Error Codes Reference
//
// User-facing messages for errors that reach the presentation layer. Users can
// quote the code when reporting a problem.
//
//	LANG001 - Unsupported language
//	          Matched by: ErrLanguageNotFound, "language not found"
//
//	DATA001 - Invalid dataset
//	          Matched by: ErrInvalidDataset, "invalid dataset"
//
//	DATA002 - Dataset source unavailable
//	          Matched by: "connection refused", "no such file"
//
//	VAL001  - Invalid number
//	          Matched by: "invalid number"
//
//	VAL002  - Missing parameter
//	          Matched by: "missing parameter"
//
//	VIEW001 - Unknown view
//	          Matched by: ErrViewNotFound, "view not found"
//
//	RATE001 - Rate limited
//	          Matched by: "rate limit"
//
//	ERR000  - Fallback when nothing matches

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

var (
	msgLanguage = UserMessage{
		Message: "This language is not available",
		Action:  "Pick one of the languages listed in the menu",
		Code:    "LANG001",
	}
	msgDataset = UserMessage{
		Message: "The country dataset is invalid",
		Action:  "Check the dataset file for duplicate codes or missing names",
		Code:    "DATA001",
	}
	msgSource = UserMessage{
		Message: "The country dataset could not be loaded",
		Action:  "Check DATASET_PATH or DATABASE_URL and try again",
		Code:    "DATA002",
	}
	msgNumber = UserMessage{
		Message: "Invalid number format",
		Action:  "Use whole numbers without separators, e.g. 1000000",
		Code:    "VAL001",
	}
	msgMissing = UserMessage{
		Message: "A required parameter is missing",
		Action:  "Provide all required query parameters",
		Code:    "VAL002",
	}
	msgValue = UserMessage{
		Message: "Unsupported parameter value",
		Action:  "Check the allowed values for this parameter, e.g. format=json or format=csv",
		Code:    "VAL003",
	}
	msgView = UserMessage{
		Message: "This view does not exist",
		Action:  "Pick one of the views listed in the menu",
		Code:    "VIEW001",
	}
	msgRate = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
)

// sentinelMessages is checked first, with errors.Is, so wrapped errors map
// regardless of the wording around them.
var sentinelMessages = []struct {
	target error
	msg    UserMessage
}{
	{ErrLanguageNotFound, msgLanguage},
	{ErrInvalidDataset, msgDataset},
	{ErrViewNotFound, msgView},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is matched case-insensitively with strings.Contains.
// The first match wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{pattern: "language not found", msg: msgLanguage},
	{pattern: "invalid dataset", msg: msgDataset},
	{pattern: "connection refused", msg: msgSource},
	{pattern: "no such file", msg: msgSource},
	{pattern: "invalid number", msg: msgNumber},
	{pattern: "missing parameter", msg: msgMissing},
	{pattern: "invalid value", msg: msgValue},
	{pattern: "view not found", msg: msgView},
	{pattern: "rate limit", msg: msgRate},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error and ERR000 when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.target) {
			return s.msg
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

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
