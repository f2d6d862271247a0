package activity

// Sink receives severity-filtered records for persistence or mirroring.
// Sink writes happen outside the tracker's critical section; a failing or
// slow sink can never block a producer's Record call.
//
// Implementations must be safe for concurrent use.
type Sink interface {
	// Name identifies the sink in error records.
	Name() string

	// Write persists one record at the given severity.
	Write(level Level, record Record) error

	// Close releases any underlying resources. Writes after Close fail.
	Close() error
}
