package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"phishguard-service/internal/domain"
	"phishguard-service/internal/infra/memory"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const poolKey = "scenarios:pool"

// ScenarioStore caches the scenario pool as JSON in Redis and falls back to
// a loader on cache miss. Sampling happens in-process on the decoded pool.
type ScenarioStore struct {
	client *redis.Client
	loader memory.ScenarioLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewScenarioStore(client *redis.Client, loader memory.ScenarioLoader, ttl time.Duration) *ScenarioStore {
	return &ScenarioStore{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

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
	raw, err := s.client.Get(ctx, poolKey).Bytes()
	if err == nil && len(raw) > 0 {
		return decodePool(raw)
	}

	result, err, _ := s.sf.Do(poolKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := s.client.Get(ctx, poolKey).Bytes()
		if err == nil && len(raw) > 0 {
			return decodePool(raw)
		}

		pool, err := s.loader.LoadScenarios(ctx)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(pool)
		if err != nil {
			return nil, fmt.Errorf("encode scenario pool: %w", err)
		}
		// best-effort cache fill
		_ = s.client.Set(ctx, poolKey, encoded, s.ttlWithJitter()).Err()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Scenario), nil
}

func decodePool(raw []byte) ([]domain.Scenario, error) {
	var pool []domain.Scenario
	if err := json.Unmarshal(raw, &pool); err != nil {
		return nil, fmt.Errorf("decode scenario pool: %w", err)
	}
	return pool, nil
}

func (s *ScenarioStore) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	jitterMax := int64(s.ttl) / 10
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.ttl + time.Duration(s.rnd.Int63n(jitterMax+1))
}
