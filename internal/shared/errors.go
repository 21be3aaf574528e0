package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrFetchFailed    = fmt.Errorf("failed to load content")
	ErrNoValidContent = fmt.Errorf("no content available with images")

	// Authentication errors
	ErrValidation     = fmt.Errorf("validation failed")
	ErrAuthRejected   = fmt.Errorf("authentication rejected")
	ErrTransport      = fmt.Errorf("server connection error")
	ErrVerifyRejected = fmt.Errorf("token verification rejected")

	// API errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
