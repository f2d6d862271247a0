package activity

import "sync"

// Tracker is the single write/read gateway combining the record store, the
// status projection, and the lifetime counters. All three advance together
// atomically per recorded event, so a reader that observes a record via
// Recent is guaranteed the status and summary already reflect it.
type Tracker struct {
	mutex          sync.RWMutex
	store          *Store
	projection     *projection
	counters       *counters
	iterationNodes []string
}

// TrackerOptions configures a new Tracker.
type TrackerOptions struct {
	// Capacity bounds the recent-records window. Zero selects
	// DefaultCapacity.
	Capacity int

	// IterationNodes are the node names whose STATE_ENTER increments the
	// iteration count. Nil selects DefaultIterationNodes.
	IterationNodes []string
}

// NewTracker creates a tracker with the given options.
func NewTracker(opts TrackerOptions) *Tracker {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.IterationNodes == nil {
		opts.IterationNodes = DefaultIterationNodes
	}
	return &Tracker{
		store:          NewStore(opts.Capacity),
		projection:     newProjection(opts.IterationNodes),
		counters:       newCounters(),
		iterationNodes: opts.IterationNodes,
	}
}

// Record validates and appends one activity record, updating the status
// projection and lifetime counters in the same critical section. It never
// blocks on I/O. An unrecognized kind fails with InvalidActivityKindError
// and leaves the tracker unchanged.
func (t *Tracker) Record(kind Kind, source, message string, metadata map[string]any) (Record, error) {
	if !kind.Valid() {
		return Record{}, &InvalidActivityKindError{Kind: string(kind)}
	}
	record := NewRecord(kind, source, message, metadata)

	t.mutex.Lock()
	defer t.mutex.Unlock()

	record = t.store.Append(record)
	t.projection.apply(record)
	t.counters.apply(record)
	return record, nil
}

// CurrentStatus returns an atomic snapshot of the status projection.
func (t *Tracker) CurrentStatus() Status {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.projection.snapshot()
}

// Recent returns the last n records in append order, oldest first.
func (t *Tracker) Recent(n int) []Record {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.store.Recent(n)
}

// All returns every buffered record in append order.
func (t *Tracker) All() []Record {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.store.All()
}

// OfKind returns the buffered records of the given kind.
func (t *Tracker) OfKind(kind Kind) []Record {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.store.OfKind(kind)
}

// FromSource returns the buffered records from the given source.
func (t *Tracker) FromSource(source string) []Record {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.store.FromSource(source)
}

// After returns the buffered records appended after seq along with the
// latest sequence number. Consumers use it to tail the store without
// holding any lock producers need.
func (t *Tracker) After(seq uint64) ([]Record, uint64) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.store.After(seq)
}

// Summary returns a consistent snapshot of the lifetime counters, including
// the iteration count from the status projection.
func (t *Tracker) Summary() Summary {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	summary := t.counters.snapshot()
	summary.Iterations = t.projection.snapshot().Iteration
	return summary
}

// IterationNodes returns the configured iteration-detection node names.
func (t *Tracker) IterationNodes() []string {
	nodes := make([]string, len(t.iterationNodes))
	copy(nodes, t.iterationNodes)
	return nodes
}

// Capacity returns the bound on the recent-records window.
func (t *Tracker) Capacity() int {
	return t.store.Capacity()
}

// TotalRecorded returns the lifetime number of records, including records
// evicted from the recent window.
func (t *Tracker) TotalRecorded() uint64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.store.TotalAppended()
}

// Reset clears the store, projection, and counters in place.
func (t *Tracker) Reset() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.store.Reset()
	t.projection.reset()
	t.counters.reset()
}

var (
	defaultMutex   sync.Mutex
	defaultTracker *Tracker
)

// Default returns the process-wide tracker, creating it with default
// options on first use. Subsequent calls return the same instance.
func Default() *Tracker {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()

	if defaultTracker == nil {
		defaultTracker = NewTracker(TrackerOptions{})
	}
	return defaultTracker
}

// SetDefault installs t as the process-wide tracker. Passing nil causes the
// next Default call to create a fresh instance.
func SetDefault(t *Tracker) {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()

	defaultTracker = t
}

// ResetDefault discards the process-wide tracker so the next Default call
// creates a fresh instance. Intended for test isolation.
func ResetDefault() {
	SetDefault(nil)
}
