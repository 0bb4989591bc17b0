// Package ytresearch provides a local web tool for YouTube engagement
// research: search videos by keyword, join them with channel statistics,
// filter for engagement "winners", and export the results to a spreadsheet
// via a webhook.
//
// # Overview
//
// The tool chains three YouTube Data API v3 calls per search:
//
//  1. search.list — keyword search, one page of up to 50 video IDs
//  2. videos.list — one batched call for snippet, statistics and duration
//  3. channels.list — one batched call for subscriber statistics
//
// The joined records are classified client-side: duration class (short is
// strictly under 60 seconds), engagement ratio (views divided by
// subscribers), and an optional winners-only filter keeping videos whose
// views reach the configured multiple of the subscriber count (1.5x by
// default).
//
// # Quick start
//
// Run the server and open the UI:
//
//	ytresearch
//	# then browse to http://localhost:8080
//
// First use walks through a three-step onboarding wizard collecting the API
// key, spreadsheet ID and webhook URL; the credentials persist in a JSON
// file under the user config directory.
//
// # Configuration
//
// Configuration loads from multiple sources:
//
//  1. Environment variables (highest priority)
//  2. A .env file in the working directory
//  3. Config file (ytresearch.json or ~/.config/ytresearch/ytresearch.json)
//  4. Default values (lowest priority)
//
// Environment variables:
//
//   - YTRESEARCH_LISTEN_ADDR: server bind address (or PORT)
//   - YTRESEARCH_SETTINGS_PATH: credentials file path
//   - YTRESEARCH_PAGE_SIZE: search page size (1-50)
//   - YTRESEARCH_ENGAGEMENT_MULTIPLIER: winners threshold
//   - YTRESEARCH_REGION_CODE: restrict search to a region
//   - YTRESEARCH_RELEVANCE_LANGUAGE: bias search relevance to a language
//   - YTRESEARCH_HTTP_TIMEOUT: outbound request timeout
//   - YTRESEARCH_API_RPS: Data API pacing (requests per second)
//   - YTRESEARCH_QUOTA_RESERVE: estimated quota units to keep in reserve
//   - YTRESEARCH_LOG_LEVEL: zerolog level
//
// # Error handling
//
// All operations return errors that implement standard Go error handling.
//
// Checking for sentinel errors:
//
//	if errors.Is(err, ytresearch.ErrQuotaExceeded) {
//		fmt.Println("daily quota exhausted")
//	}
//
// Extracting wrapped error details:
//
//	var apiErr *ytresearch.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed with status %d\n", apiErr.Op, apiErr.Code)
//	}
//
// # Packages
//
// For programmatic use, the sub-packages compose directly:
//
//   - youtube: Data API client and the ISO 8601 duration codec
//   - research: filters, classification, session state, orchestration
//   - export: webhook delivery of accumulated records
//   - settings: credential persistence
//   - config: configuration management
package ytresearch
