package metrics

import (
	"sync"
	"time"
)

type operationKey struct {
	operation string
	outcome   string
}

// Recorder captures lightweight, in-memory metrics about catalog and HTTP activity
// and forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu          sync.Mutex
	operations  map[operationKey]int
	requests    int
	lastLatency time.Duration
	catalogSize int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		operations: make(map[operationKey]int),
		otel:       otel,
	}
}

// RecordCatalogOperation counts a catalog mutation by operation and outcome.
func (r *Recorder) RecordCatalogOperation(operation, outcome string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.operations[operationKey{operation: operation, outcome: outcome}]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCatalogOperation(operation, outcome)
	}
}

// RecordCatalogSize stores the last observed number of games.
func (r *Recorder) RecordCatalogSize(size int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.catalogSize = size
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCatalogSize(size)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.requests++
	r.lastLatency = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// CatalogOperations returns how many times operation finished with outcome.
func (r *Recorder) CatalogOperations(operation, outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.operations[operationKey{operation: operation, outcome: outcome}]
}

// Snapshot is a copy of the recorder's aggregate counters.
type Snapshot struct {
	Requests        int
	LastLatency     time.Duration
	CatalogSize     int
	TotalOperations int
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, n := range r.operations {
		total += n
	}
	return Snapshot{
		Requests:        r.requests,
		LastLatency:     r.lastLatency,
		CatalogSize:     r.catalogSize,
		TotalOperations: total,
	}
}
