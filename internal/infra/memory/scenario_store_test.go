package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"phishguard-service/internal/domain"
)

func TestScenarioStoreCachesPool(t *testing.T) {
	loader := &countingLoader{ScenarioLoader: NewStaticScenarioLoader(samplePool(5))}
	store := NewScenarioStore(loader, time.Minute)

	if _, err := store.Sample(context.Background(), 5); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := store.Random(context.Background()); err != nil {
		t.Fatalf("random: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	store := NewScenarioStore(NewStaticScenarioLoader(samplePool(8)), time.Minute)

	sample, err := store.Sample(context.Background(), 5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(sample) != 5 {
		t.Fatalf("expected 5 scenarios, got %d", len(sample))
	}
	seen := make(map[string]bool)
	for _, scenario := range sample {
		if seen[scenario.ID] {
			t.Fatalf("scenario %s drawn twice", scenario.ID)
		}
		seen[scenario.ID] = true
	}
}

func TestSampleInsufficientPool(t *testing.T) {
	store := NewScenarioStore(NewStaticScenarioLoader(samplePool(4)), time.Minute)
	if _, err := store.Sample(context.Background(), 5); !errors.Is(err, domain.ErrInsufficientPool) {
		t.Fatalf("expected ErrInsufficientPool, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	store := NewScenarioStore(NewStaticScenarioLoader(samplePool(3)), time.Minute)

	scenario, err := store.Get(context.Background(), "s2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if scenario.ID != "s2" {
		t.Fatalf("expected s2, got %s", scenario.ID)
	}

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}
}

type countingLoader struct {
	ScenarioLoader
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
			Difficulty:  domain.DifficultyEasy,
			GroundTruth: domain.AnswerPhishing,
		})
	}
	return pool
}
