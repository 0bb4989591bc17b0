// Package settings persists the three credentials the research tool needs:
// the YouTube Data API key, the target spreadsheet ID, and the export
// webhook URL.
package settings

import (
	"errors"
	"fmt"
)

// Sentinel errors for common settings conditions.
var (
	// ErrLockTimeout indicates a timeout acquiring the settings file lock.
	ErrLockTimeout = errors.New("settings: lock acquisition timeout")
)

// Settings holds the persisted credentials.
// All three fields are required before any search or export may proceed.
type Settings struct {
	// APIKey is the YouTube Data API v3 key.
	APIKey string `json:"api_key"`
	// SpreadsheetID identifies the spreadsheet the webhook appends rows to.
	SpreadsheetID string `json:"spreadsheet_id"`
	// WebhookURL is the export webhook endpoint.
	WebhookURL string `json:"webhook_url"`
}

// IsComplete reports whether all three credentials are present.
// It gates every network operation.
func (s *Settings) IsComplete() bool {
	return s.APIKey != "" && s.SpreadsheetID != "" && s.WebhookURL != ""
}

// Validate returns a *ValidationError naming the first missing field,
// or nil when the settings are complete.
func (s *Settings) Validate() error {
	switch {
	case s.APIKey == "":
		return &ValidationError{Field: "api_key"}
	case s.SpreadsheetID == "":
		return &ValidationError{Field: "spreadsheet_id"}
	case s.WebhookURL == "":
		return &ValidationError{Field: "webhook_url"}
	}
	return nil
}

// ValidationError indicates a required settings field is blank.
type ValidationError struct {
	// Field is the JSON name of the missing field.
	Field string
}

// Error returns a string representation of the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings: %s is required", e.Field)
}

// StoreError wraps settings persistence errors with operation context.
type StoreError struct {
	// Op is the operation that failed ("read", "write", "lock").
	Op string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the store error.
func (e *StoreError) Error() string {
	return fmt.Sprintf("settings: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StoreError) Unwrap() error { return e.Err }
