package ophase

import (
	"time"

	"github.com/sasha-s/go-deadlock"

	"ophasebot/entity"
)

type stats struct {
	mu     deadlock.Mutex
	status entity.Status
}

func newStats(configured bool) *stats {
	return &stats{
		status: entity.Status{
			Configured: configured,
			StartedAt:  time.Now().UTC(),
		},
	}
}

func (s *stats) update(fn func(st *entity.Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.status)
}

func (s *stats) snapshot() entity.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
