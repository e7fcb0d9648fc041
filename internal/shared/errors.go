package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrUnknownDriver = fmt.Errorf("unknown storage driver")

	// Collection errors
	ErrDuplicate = fmt.Errorf("duplicate entry")
	ErrNotFound  = fmt.Errorf("not found")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPersistFailed      = fmt.Errorf("collection was not persisted")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
