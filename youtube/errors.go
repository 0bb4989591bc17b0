package youtube

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for YouTube API operations.
var (
	// ErrQuotaExceeded indicates the daily API quota is exhausted.
	ErrQuotaExceeded = errors.New("youtube: quota exceeded")
	// ErrInvalidAPIKey indicates the configured API key was rejected.
	ErrInvalidAPIKey = errors.New("youtube: invalid api key")
)

// APIError wraps a failed Data API call with operation context.
// Use errors.As() to extract it:
//
//	var apiErr *youtube.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed with status %d\n", apiErr.Op, apiErr.Code)
//	}
type APIError struct {
	// Op is the endpoint that failed ("search", "videos", "channels").
	Op string
	// Code is the HTTP status code if known, 0 otherwise.
	Code int
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the API error.
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("youtube: %s: status %d: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("youtube: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *APIError) Unwrap() error { return e.Err }

// wrapAPIError converts a Data API failure into an *APIError, mapping the
// well-known quota and key rejection reasons to sentinel errors.
func wrapAPIError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		for _, item := range gerr.Errors {
			switch item.Reason {
			case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
				return &APIError{Op: op, Code: gerr.Code, Err: ErrQuotaExceeded}
			case "keyInvalid":
				return &APIError{Op: op, Code: gerr.Code, Err: ErrInvalidAPIKey}
			}
		}
		return &APIError{Op: op, Code: gerr.Code, Err: err}
	}
	return &APIError{Op: op, Err: err}
}
