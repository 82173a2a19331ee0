package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"phishguard-service/internal/domain"
	"phishguard-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestScenarioStoreCachesPoolInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{ScenarioLoader: memory.NewStaticScenarioLoader(samplePool(5))}
	store := NewScenarioStore(client, loader, time.Minute)

	if _, err := store.Sample(context.Background(), 5); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("scenarios:pool") {
		t.Fatalf("expected pool cached in redis")
	}

	// A fresh store sharing the same redis must serve from cache.
	other := NewScenarioStore(client, loader, time.Minute)
	if _, err := other.Random(context.Background()); err != nil {
		t.Fatalf("random: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestScenarioStoreSampleInsufficientPool(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{ScenarioLoader: memory.NewStaticScenarioLoader(samplePool(3))}
	store := NewScenarioStore(newClient(mr), loader, time.Minute)

	if _, err := store.Sample(context.Background(), 5); !errors.Is(err, domain.ErrInsufficientPool) {
		t.Fatalf("expected ErrInsufficientPool, got %v", err)
	}
}

func TestScenarioStoreGet(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewScenarioStore(newClient(mr), memory.NewStaticScenarioLoader(samplePool(3)), time.Minute)

	scenario, err := store.Get(context.Background(), "s3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if scenario.ID != "s3" {
		t.Fatalf("expected s3, got %s", scenario.ID)
	}
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}
}

type countingLoader struct {
	memory.ScenarioLoader
	calls int
}

func (l *countingLoader) LoadScenarios(ctx context.Context) ([]domain.Scenario, error) {
	l.calls++
	return l.ScenarioLoader.LoadScenarios(ctx)
}

func samplePool(n int) []domain.Scenario {
	pool := make([]domain.Scenario, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, domain.Scenario{
			ID:          fmt.Sprintf("s%d", i+1),
			Category:    domain.CategoryEmail,
			Difficulty:  domain.DifficultyMedium,
			GroundTruth: domain.AnswerSuspicious,
		})
	}
	return pool
}
