package particle

// DefaultEvictFraction is the share of capacity an event insert frees when
// the store is full.
const DefaultEvictFraction = 0.25

// Store holds live particles in insertion order (oldest first) and enforces
// a hard capacity. The backing array is allocated once, so memory use is
// bounded by the capacity regardless of how many spawns are requested.
type Store struct {
	items         []Particle
	cap           int
	nextID        uint64
	evictFraction float64
}

// NewStore allocates a store bounded by capacity. Non-positive capacities
// produce a store that accepts nothing.
func NewStore(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{
		items:         make([]Particle, 0, capacity),
		cap:           capacity,
		evictFraction: DefaultEvictFraction,
	}
}

// Len returns the number of live particles.
func (s *Store) Len() int { return len(s.items) }

// Cap returns the hard capacity.
func (s *Store) Cap() int { return s.cap }

// Full reports whether the store is at capacity.
func (s *Store) Full() bool { return len(s.items) >= s.cap }

// SetEvictFraction changes the share of capacity freed by an event insert
// into a full store. Values are clamped to (0, 1].
func (s *Store) SetEvictFraction(f float64) {
	if f <= 0 || f > 1 {
		f = DefaultEvictFraction
	}
	s.evictFraction = f
}

// Particles exposes the live particles, oldest first. Callers must treat the
// slice as read-only and must not retain it across frames.
func (s *Store) Particles() []Particle { return s.items }

// Counts returns the number of ambient and event particles.
func (s *Store) Counts() (ambient, event int) {
	for i := range s.items {
		if s.items[i].Kind.IsEvent() {
			event++
		} else {
			ambient++
		}
	}
	return ambient, event
}

// Add inserts an ambient particle. It is rejected when the store is full.
func (s *Store) Add(p Particle) (uint64, bool) {
	if len(s.items) >= s.cap {
		return 0, false
	}
	return s.insert(p), true
}

// AddEvent inserts an event particle. When the store is full the oldest
// fraction is evicted first, ambient particles before event particles.
func (s *Store) AddEvent(p Particle) (uint64, bool) {
	if s.cap == 0 {
		return 0, false
	}
	if len(s.items) >= s.cap {
		s.evict(s.evictCount())
	}
	return s.insert(p), true
}

func (s *Store) insert(p Particle) uint64 {
	s.nextID++
	p.ID = s.nextID
	s.items = append(s.items, p)
	return p.ID
}

func (s *Store) evictCount() int {
	n := int(float64(s.cap) * s.evictFraction)
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Store) evict(n int) {
	removed := 0
	keep := s.items[:0]
	for _, p := range s.items {
		if removed < n && !p.Kind.IsEvent() {
			removed++
			continue
		}
		keep = append(keep, p)
	}
	s.items = keep
	if removed >= n {
		return
	}
	drop := n - removed
	if drop > len(s.items) {
		drop = len(s.items)
	}
	copy(s.items, s.items[drop:])
	s.items = s.items[:len(s.items)-drop]
}

// Reap removes every particle whose age has reached its max life and
// returns how many were removed. Order of survivors is preserved.
func (s *Store) Reap() int {
	keep := s.items[:0]
	for _, p := range s.items {
		if p.Expired() {
			continue
		}
		keep = append(keep, p)
	}
	removed := len(s.items) - len(keep)
	s.items = keep
	return removed
}

// RemoveAmbient drops all ambient particles, keeping in-flight event
// particles. Used when the active theme changes.
func (s *Store) RemoveAmbient() int {
	keep := s.items[:0]
	for _, p := range s.items {
		if p.Kind.IsEvent() {
			keep = append(keep, p)
		}
	}
	removed := len(s.items) - len(keep)
	s.items = keep
	return removed
}

// Clear removes every particle.
func (s *Store) Clear() { s.items = s.items[:0] }

// SetCap changes the hard capacity. Shrinking evicts with the same
// policy as a full event insert until the store fits.
func (s *Store) SetCap(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	s.cap = capacity
	if over := len(s.items) - capacity; over > 0 {
		s.evict(over)
	}
	if cap(s.items) < capacity {
		grown := make([]Particle, len(s.items), capacity)
		copy(grown, s.items)
		s.items = grown
	}
}
