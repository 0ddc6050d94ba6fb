package embedding

import "fmt"

// ServiceError marks a failed remote embedding call so callers can tell an
// upstream failure apart from their own. A single attempt is made per call,
// no retries.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
