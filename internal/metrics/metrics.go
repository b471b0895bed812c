package metrics

import (
	"time"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// StatusOf maps an error to a status label value.
func StatusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSearch records one search call and, on success, its result count.
func (r *Registry) RecordSearch(status string, results int) {
	if r == nil {
		return
	}
	r.SearchRequestsTotal.WithLabelValues(status).Inc()
	if status == StatusOK {
		r.SearchResults.Observe(float64(results))
	}
}

// RecordIndexWrite records a single entity index write.
func (r *Registry) RecordIndexWrite(entityType, op, status string) {
	if r == nil {
		return
	}
	r.IndexWritesTotal.WithLabelValues(entityType, op, status).Inc()
}

// RecordIndexRebuild records a full rebuild of one novel.
func (r *Registry) RecordIndexRebuild(status string) {
	if r == nil {
		return
	}
	r.IndexRebuilds.WithLabelValues(status).Inc()
}

// RecordSync records a pull or push cycle
func (r *Registry) RecordSync(op, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.SyncCyclesTotal.WithLabelValues(op, status).Inc()
	r.SyncDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// SetSyncCursor publishes the committed sync cursor.
func (r *Registry) SetSyncCursor(cursor int64) {
	if r == nil {
		return
	}
	r.SyncCursor.Set(float64(cursor))
}
