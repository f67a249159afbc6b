package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Session & account errors
	ErrNoSession          = fmt.Errorf("no active session")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrAccountExists      = fmt.Errorf("a user with this email already exists")
	ErrInvalidProfile     = fmt.Errorf("invalid profile")

	// Storage errors
	ErrSlotNotFound = fmt.Errorf("storage slot not found")
	ErrCacheMiss    = fmt.Errorf("cache miss")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMovieNotFound      = fmt.Errorf("movie not found")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
