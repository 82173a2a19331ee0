package memory

import (
	"context"
	"sort"
	"sync"

	"phishguard-service/internal/domain"
)

// ProfileStore is an in-memory implementation of app.ProfileStore for tests
// and redis-less runs. Increments are applied under the mutex, so they are
// monotonic and safe to apply in any order.
type ProfileStore struct {
	mu       sync.Mutex
	counters map[string]map[string]int
	sets     map[string]map[string]map[string]struct{}
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		counters: make(map[string]map[string]int),
		sets:     make(map[string]map[string]map[string]struct{}),
	}
}

func (s *ProfileStore) Increment(_ context.Context, userID, field string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counters[userID] == nil {
		s.counters[userID] = make(map[string]int)
	}
	s.counters[userID][field] += delta
	return nil
}

func (s *ProfileStore) AddToSet(_ context.Context, userID, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sets[userID] == nil {
		s.sets[userID] = make(map[string]map[string]struct{})
	}
	if s.sets[userID][field] == nil {
		s.sets[userID][field] = make(map[string]struct{})
	}
	s.sets[userID][field][value] = struct{}{}
	return nil
}

func (s *ProfileStore) Read(_ context.Context, userID string) (domain.ProfileAggregates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counters := s.counters[userID]
	return domain.ProfileAggregates{
		UserID:             userID,
		Score:              counters[domain.FieldScore],
		TotalAttempts:      counters[domain.FieldTotalAttempts],
		CorrectAnswers:     counters[domain.FieldCorrectAnswers],
		QuizzesCompleted:   counters[domain.FieldQuizzesCompleted],
		TotalQuizScore:     counters[domain.FieldTotalQuizScore],
		Badges:             s.setMembersLocked(userID, domain.FieldBadges),
		CompletedScenarios: s.setMembersLocked(userID, domain.FieldCompletedScenarios),
	}, nil
}

func (s *ProfileStore) setMembersLocked(userID, field string) []string {
	members := make([]string, 0, len(s.sets[userID][field]))
	for value := range s.sets[userID][field] {
		members = append(members, value)
	}
	sort.Strings(members)
	return members
}
