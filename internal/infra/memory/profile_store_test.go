package memory

import (
	"context"
	"testing"

	"phishguard-service/internal/domain"
)

func TestProfileStoreIncrementsAndSets(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore()

	_ = store.Increment(ctx, "u1", domain.FieldScore, 10)
	_ = store.Increment(ctx, "u1", domain.FieldScore, 10)
	_ = store.AddToSet(ctx, "u1", domain.FieldBadges, domain.BadgePerfectScore)
	_ = store.AddToSet(ctx, "u1", domain.FieldBadges, domain.BadgePerfectScore)

	aggregates, err := store.Read(ctx, "u1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if aggregates.Score != 20 {
		t.Fatalf("expected score 20, got %d", aggregates.Score)
	}
	if len(aggregates.Badges) != 1 {
		t.Fatalf("expected idempotent badge add, got %v", aggregates.Badges)
	}
}

func TestProfileStoreUnknownUserIsZero(t *testing.T) {
	store := NewProfileStore()
	aggregates, err := store.Read(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if aggregates.Score != 0 || aggregates.TotalAttempts != 0 || len(aggregates.Badges) != 0 {
		t.Fatalf("expected zero aggregates, got %+v", aggregates)
	}
}
