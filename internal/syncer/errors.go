package syncer

import (
	"fmt"
	"net/http"
)

// SyncError is returned when a pull or push round-trip with the remote
// fails. The cursor is never advanced on a SyncError, so the same cycle can
// simply be retried.
type SyncError struct {
	Op         string // "pull" or "push"
	StatusCode int    // zero for transport failures
	Body       string
	Err        error
}

func (e *SyncError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sync %s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("sync %s failed: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Retryable reports whether trying the same cycle again may succeed.
func (e *SyncError) Retryable() bool {
	switch {
	case e.StatusCode == 0:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}
