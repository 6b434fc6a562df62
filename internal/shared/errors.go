package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrCredentialAcquisition = fmt.Errorf("credential acquisition failed")
	ErrNotAuthenticated      = fmt.Errorf("not authenticated")

	// API and catalog errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrSectionFetch       = fmt.Errorf("section fetch failed")
	ErrMalformedResponse  = fmt.Errorf("malformed response")
	ErrSearchSuperseded   = fmt.Errorf("search superseded by a newer term")
	ErrClosed             = fmt.Errorf("orchestrator closed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
