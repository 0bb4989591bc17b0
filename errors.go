package ytresearch

import (
	"ytresearch/export"
	"ytresearch/research"
	"ytresearch/settings"
	"ytresearch/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytresearch.ErrSearchInFlight) {
//		fmt.Println("search already running")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var apiErr *ytresearch.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed: %v\n", apiErr.Op, apiErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// APIError wraps a failed YouTube Data API call.
	APIError = youtube.APIError
	// SettingsValidationError indicates a required credential is blank.
	SettingsValidationError = settings.ValidationError
	// FilterValidationError indicates a missing or invalid search input.
	FilterValidationError = research.ValidationError
	// StoreError wraps settings persistence errors.
	StoreError = settings.StoreError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrQuotaExceeded indicates the daily API quota is exhausted.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded
	// ErrInvalidAPIKey indicates the configured API key was rejected.
	ErrInvalidAPIKey = youtube.ErrInvalidAPIKey
	// ErrSearchInFlight indicates a search was requested while one is running.
	ErrSearchInFlight = research.ErrSearchInFlight
	// ErrNoRecords indicates an export was requested with nothing accumulated.
	ErrNoRecords = export.ErrNoRecords
	// ErrLockTimeout indicates a timeout acquiring the settings file lock.
	ErrLockTimeout = settings.ErrLockTimeout
)
