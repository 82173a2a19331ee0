package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"phishguard-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ScenarioLoader fetches the full scenario pool from a backing store.
type ScenarioLoader interface {
	LoadScenarios(ctx context.Context) ([]domain.Scenario, error)
}

// ScenarioStore caches the scenario pool with TTL to avoid repeated DB hits
// and serves uniform random samples from it.
type ScenarioStore struct {
	loader ScenarioLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu        sync.RWMutex
	pool      []domain.Scenario
	expiresAt time.Time
}

func NewScenarioStore(loader ScenarioLoader, ttl time.Duration) *ScenarioStore {
	return &ScenarioStore{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample draws n distinct scenarios uniformly without replacement.
func (s *ScenarioStore) Sample(ctx context.Context, n int) ([]domain.Scenario, error) {
	pool, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) < n {
		return nil, domain.ErrInsufficientPool
	}

	s.rndMu.Lock()
	order := s.rnd.Perm(len(pool))
	s.rndMu.Unlock()

	sample := make([]domain.Scenario, 0, n)
	for _, idx := range order[:n] {
		sample = append(sample, pool[idx])
	}
	return sample, nil
}

// Random returns one scenario uniformly at random.
func (s *ScenarioStore) Random(ctx context.Context) (domain.Scenario, error) {
	pool, err := s.load(ctx)
	if err != nil {
		return domain.Scenario{}, err
	}
	if len(pool) == 0 {
		return domain.Scenario{}, domain.ErrInsufficientPool
	}
	s.rndMu.Lock()
	idx := s.rnd.Intn(len(pool))
	s.rndMu.Unlock()
	return pool[idx], nil
}

// Get returns the scenario with the given ID.
func (s *ScenarioStore) Get(ctx context.Context, id string) (domain.Scenario, error) {
	pool, err := s.load(ctx)
	if err != nil {
		return domain.Scenario{}, err
	}
	for _, scenario := range pool {
		if scenario.ID == id {
			return scenario, nil
		}
	}
	return domain.Scenario{}, domain.ErrScenarioNotFound
}

func (s *ScenarioStore) load(ctx context.Context) ([]domain.Scenario, error) {
	now := s.clock()

	s.mu.RLock()
	if s.pool != nil && s.expiresAt.After(now) {
		pool := s.pool
		s.mu.RUnlock()
		return pool, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.sf.Do("pool", func() (interface{}, error) {
		now := s.clock()
		s.mu.RLock()
		if s.pool != nil && s.expiresAt.After(now) {
			pool := s.pool
			s.mu.RUnlock()
			return pool, nil
		}
		s.mu.RUnlock()

		pool, err := s.loader.LoadScenarios(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.pool = pool
		s.expiresAt = now.Add(s.ttlWithJitter())
		s.mu.Unlock()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Scenario), nil
}

func (s *ScenarioStore) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(s.ttl) / 10
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.ttl + time.Duration(s.rnd.Int63n(jitterMax+1))
}

// StaticScenarioLoader serves a fixed pool (seed data, tests, demos).
type StaticScenarioLoader struct {
	scenarios []domain.Scenario
}

func NewStaticScenarioLoader(scenarios []domain.Scenario) *StaticScenarioLoader {
	return &StaticScenarioLoader{scenarios: scenarios}
}

func (l *StaticScenarioLoader) LoadScenarios(_ context.Context) ([]domain.Scenario, error) {
	return l.scenarios, nil
}
