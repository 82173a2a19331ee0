package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"phishguard-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ProfileStore keeps the per-user aggregates in Redis:
//
//	HINCRBY user:{id}:stats {field} {delta}   numeric counters
//	SADD    user:{id}:{field} {value}         badge / completed-scenario sets
//
// HINCRBY gives the atomic monotonic increment the aggregate contract asks
// for, and SADD makes badge awards idempotent by construction.
type ProfileStore struct {
	client *redis.Client
}

func NewProfileStore(client *redis.Client) *ProfileStore {
	return &ProfileStore{client: client}
}

func (s *ProfileStore) Increment(ctx context.Context, userID, field string, delta int) error {
	if err := s.client.HIncrBy(ctx, s.statsKey(userID), field, int64(delta)).Err(); err != nil {
		return fmt.Errorf("increment %s for %s: %w", field, userID, err)
	}
	return nil
}

func (s *ProfileStore) AddToSet(ctx context.Context, userID, field, value string) error {
	if err := s.client.SAdd(ctx, s.setKey(userID, field), value).Err(); err != nil {
		return fmt.Errorf("add %s to %s for %s: %w", value, field, userID, err)
	}
	return nil
}

func (s *ProfileStore) Read(ctx context.Context, userID string) (domain.ProfileAggregates, error) {
	stats, err := s.client.HGetAll(ctx, s.statsKey(userID)).Result()
	if err != nil {
		return domain.ProfileAggregates{}, fmt.Errorf("read stats for %s: %w", userID, err)
	}
	badges, err := s.readSet(ctx, userID, domain.FieldBadges)
	if err != nil {
		return domain.ProfileAggregates{}, err
	}
	completed, err := s.readSet(ctx, userID, domain.FieldCompletedScenarios)
	if err != nil {
		return domain.ProfileAggregates{}, err
	}
	return domain.ProfileAggregates{
		UserID:             userID,
		Score:              intField(stats, domain.FieldScore),
		TotalAttempts:      intField(stats, domain.FieldTotalAttempts),
		CorrectAnswers:     intField(stats, domain.FieldCorrectAnswers),
		QuizzesCompleted:   intField(stats, domain.FieldQuizzesCompleted),
		TotalQuizScore:     intField(stats, domain.FieldTotalQuizScore),
		Badges:             badges,
		CompletedScenarios: completed,
	}, nil
}

func (s *ProfileStore) readSet(ctx context.Context, userID, field string) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.setKey(userID, field)).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s for %s: %w", field, userID, err)
	}
	sort.Strings(members)
	return members, nil
}

func (s *ProfileStore) statsKey(userID string) string {
	return "user:" + userID + ":stats"
}

func (s *ProfileStore) setKey(userID, field string) string {
	return "user:" + userID + ":" + field
}

func intField(stats map[string]string, field string) int {
	if raw, ok := stats[field]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return 0
}
