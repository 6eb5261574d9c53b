package catalog

import "fmt"

// ProviderError indicates the external catalog service was unreachable
// or returned an error. It is retryable by the caller; the client
// itself never retries.
type ProviderError struct {
	Op     string // "search" or "offers"
	Status int    // HTTP status, 0 for transport failures
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog %s: provider returned status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
