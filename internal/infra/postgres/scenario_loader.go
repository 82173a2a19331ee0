package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"phishguard-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ScenarioLoader loads the scenario pool from Postgres JSONB rows.
type ScenarioLoader struct {
	pool *pgxpool.Pool
}

func NewScenarioLoader(pool *pgxpool.Pool) *ScenarioLoader {
	return &ScenarioLoader{pool: pool}
}

func (l *ScenarioLoader) LoadScenarios(ctx context.Context) ([]domain.Scenario, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM scenarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		var scenario domain.Scenario
		if err := json.Unmarshal(raw, &scenario); err != nil {
			return nil, fmt.Errorf("unmarshal scenario: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	return scenarios, nil
}

// Insert upserts one scenario document, used by the seed command.
func (l *ScenarioLoader) Insert(ctx context.Context, scenario domain.Scenario) error {
	raw, err := json.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("marshal scenario %s: %w", scenario.ID, err)
	}
	_, err = l.pool.Exec(ctx,
		`INSERT INTO scenarios (id, data) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		scenario.ID, raw)
	if err != nil {
		return fmt.Errorf("insert scenario %s: %w", scenario.ID, err)
	}
	return nil
}
