package activity

import "sync"

// DefaultCapacity is the default bound on the recent-records window.
const DefaultCapacity = 1000

// Store is a bounded, append-ordered collection of records. Once the
// capacity is reached the oldest records are evicted, so queries see a
// sliding window of the most recent activity. Sequence numbers are lifetime
// values and are not reused after eviction.
//
// All methods are safe for concurrent use. Queries return copies, so
// callers may hold results without blocking appends.
type Store struct {
	mutex    sync.RWMutex
	capacity int
	records  []Record
	start    int
	size     int
	seq      uint64
}

// NewStore creates a store retaining at most capacity records. A
// non-positive capacity selects DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		records:  make([]Record, capacity),
	}
}

// Append stores the record, assigns its lifetime sequence number, and
// returns the stored copy. It never blocks on I/O.
func (s *Store) Append(record Record) Record {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.seq++
	record.Seq = s.seq
	s.records[(s.start+s.size)%s.capacity] = record
	if s.size == s.capacity {
		s.start = (s.start + 1) % s.capacity
	} else {
		s.size++
	}
	return record
}

// Recent returns the last n records in append order, oldest first. The
// value of n is clamped to the number of buffered records.
func (s *Store) Recent(n int) []Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.recentLocked(n)
}

func (s *Store) recentLocked(n int) []Record {
	if n < 0 {
		n = 0
	}
	if n > s.size {
		n = s.size
	}
	out := make([]Record, 0, n)
	for i := s.size - n; i < s.size; i++ {
		out = append(out, s.records[(s.start+i)%s.capacity])
	}
	return out
}

// All returns every buffered record in append order.
func (s *Store) All() []Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.recentLocked(s.size)
}

// OfKind returns every buffered record of the given kind in append order.
func (s *Store) OfKind(kind Kind) []Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []Record
	for i := 0; i < s.size; i++ {
		record := s.records[(s.start+i)%s.capacity]
		if record.Kind == kind {
			out = append(out, record)
		}
	}
	return out
}

// FromSource returns every buffered record from the given source in append
// order.
func (s *Store) FromSource(source string) []Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []Record
	for i := 0; i < s.size; i++ {
		record := s.records[(s.start+i)%s.capacity]
		if record.Source == source {
			out = append(out, record)
		}
	}
	return out
}

// After returns the buffered records with sequence numbers greater than
// seq, oldest first, along with the latest sequence number appended so far.
// Records already evicted from the window are not included, so a slow
// consumer observes a gap rather than stale entries.
func (s *Store) After(seq uint64) ([]Record, uint64) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []Record
	for i := 0; i < s.size; i++ {
		record := s.records[(s.start+i)%s.capacity]
		if record.Seq > seq {
			out = append(out, record)
		}
	}
	return out, s.seq
}

// Len returns the number of buffered records.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.size
}

// Capacity returns the bound on the recent-records window.
func (s *Store) Capacity() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.capacity
}

// TotalAppended returns the lifetime number of appends, including records
// that have since been evicted.
func (s *Store) TotalAppended() uint64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.seq
}

// Reset discards all buffered records and restarts sequence numbering.
func (s *Store) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.records = make([]Record, s.capacity)
	s.start = 0
	s.size = 0
	s.seq = 0
}
