package metrics

import (
	"context"
	"sort"
	"sync"
	"time"

	"medchat/internal/models"
)

type outcomeKey struct {
	trigger string
	outcome string
}

// MemoryStore counts reply outcomes in process memory. Used when no database
// is configured; counts reset on restart.
type MemoryStore struct {
	mu     sync.Mutex
	counts map[outcomeKey]*models.ReplyOutcome
	now    func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counts: make(map[outcomeKey]*models.ReplyOutcome),
		now:    time.Now,
	}
}

// IncrementReplyOutcome adds one hit.
func (s *MemoryStore) IncrementReplyOutcome(_ context.Context, trigger, outcome string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := outcomeKey{trigger, outcome}
	o, ok := s.counts[k]
	if !ok {
		o = &models.ReplyOutcome{Trigger: trigger, Outcome: outcome}
		s.counts[k] = o
	}
	o.Count++
	o.LastSeenAt = s.now()
	return nil
}

// GetAllReplyOutcomes returns all counts ordered by outcome, then trigger.
func (s *MemoryStore) GetAllReplyOutcomes(_ context.Context) ([]models.ReplyOutcome, error) {
	s.mu.Lock()
	out := make([]models.ReplyOutcome, 0, len(s.counts))
	for _, o := range s.counts {
		out = append(out, *o)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Outcome != out[j].Outcome {
			return out[i].Outcome < out[j].Outcome
		}
		return out[i].Trigger < out[j].Trigger
	})
	return out, nil
}

// PruneReplyOutcomes deletes counts last seen before cutoff.
func (s *MemoryStore) PruneReplyOutcomes(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for k, o := range s.counts {
		if o.LastSeenAt.Before(cutoff) {
			delete(s.counts, k)
			removed++
		}
	}
	return removed, nil
}
