package redis

import (
	"context"
	"testing"

	"phishguard-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestProfileStoreIncrementsCounters(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewProfileStore(newClient(mr))

	if err := store.Increment(ctx, "u1", domain.FieldScore, 10); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := store.Increment(ctx, "u1", domain.FieldScore, 30); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := store.Increment(ctx, "u1", domain.FieldQuizzesCompleted, 1); err != nil {
		t.Fatalf("increment: %v", err)
	}

	aggregates, err := store.Read(ctx, "u1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if aggregates.Score != 40 {
		t.Fatalf("expected score 40, got %d", aggregates.Score)
	}
	if aggregates.QuizzesCompleted != 1 {
		t.Fatalf("expected 1 quiz completed, got %d", aggregates.QuizzesCompleted)
	}
}

func TestProfileStoreSetAddIsIdempotent(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewProfileStore(newClient(mr))

	for i := 0; i < 3; i++ {
		if err := store.AddToSet(ctx, "u1", domain.FieldBadges, domain.BadgeQuizMaster); err != nil {
			t.Fatalf("add to set: %v", err)
		}
	}
	if err := store.AddToSet(ctx, "u1", domain.FieldCompletedScenarios, "email-1"); err != nil {
		t.Fatalf("add to set: %v", err)
	}

	aggregates, err := store.Read(ctx, "u1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(aggregates.Badges) != 1 || aggregates.Badges[0] != domain.BadgeQuizMaster {
		t.Fatalf("expected single badge, got %v", aggregates.Badges)
	}
	if len(aggregates.CompletedScenarios) != 1 {
		t.Fatalf("expected one completed scenario, got %v", aggregates.CompletedScenarios)
	}
}

func TestProfileStoreUnknownUserIsZero(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewProfileStore(newClient(mr))
	aggregates, err := store.Read(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if aggregates.Score != 0 || len(aggregates.Badges) != 0 {
		t.Fatalf("expected zero aggregates, got %+v", aggregates)
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}
