package ophase

import "github.com/sasha-s/go-deadlock"

// Tracker holds the last known use count of the tracked invite.
// It is shared by every join notification; the count can only be read
// together with storing the newer value, so two observers never both see
// the same stale count.
type Tracker struct {
	mu    deadlock.Mutex
	known bool
	uses  uint64
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Initialize stores a fresh snapshot, replacing any earlier one.
func (t *Tracker) Initialize(uses uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.uses = uses
	t.known = true
}

// ReadAndUpdate swaps in uses and returns the value it replaced.
func (t *Tracker) ReadAndUpdate(uses uint64) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.known {
		return 0, ErrNotInitialized
	}
	previous := t.uses
	t.uses = uses
	return previous, nil
}

func (t *Tracker) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.known
}
