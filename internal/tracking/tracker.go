package tracking

import (
	"errors"
	"sync"

	"github.com/Vallabhkejgir/Location-Tracker/internal/geofence"
)

var ErrNonFiniteCoordinate = errors.New("coordinate values must be finite")

// Tracker holds the process-wide destination and current-position slots.
// Every update is a full overwrite; no history is kept and out-of-order
// updates are not detected (last write wins).
type Tracker struct {
	mu          sync.RWMutex
	destination *geofence.Coordinate
	current     *geofence.Coordinate
	alerted     bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// SetDestination overwrites the destination slot and re-arms the alert latch.
func (t *Tracker) SetDestination(c geofence.Coordinate) error {
	if !c.Finite() {
		return ErrNonFiniteCoordinate
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.destination = &c
	t.alerted = false
	return nil
}

// UpdatePosition overwrites the current-position slot unconditionally.
func (t *Tracker) UpdatePosition(c geofence.Coordinate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = &c
}

// Snapshot returns copies of the current and destination coordinates so the
// geofence check runs without holding the lock. Either may be nil when unset.
func (t *Tracker) Snapshot() (current, destination *geofence.Coordinate) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current != nil {
		c := *t.current
		current = &c
	}
	if t.destination != nil {
		d := *t.destination
		destination = &d
	}
	return current, destination
}

// RecordArrival updates the alert latch from the latest geofence result and
// reports whether an alert should fire now. The latch arms on the transition
// into the radius and re-arms once the position leaves it, so repeated
// in-range updates dial at most once per arrival.
func (t *Tracker) RecordArrival(arrived bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	fire := arrived && !t.alerted
	t.alerted = arrived
	return fire
}

// Destination reports the destination slot; nil when unset.
func (t *Tracker) Destination() *geofence.Coordinate {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.destination == nil {
		return nil
	}
	d := *t.destination
	return &d
}
