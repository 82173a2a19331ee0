package cli

import (
	"context"
	"fmt"
	"log"

	"phishguard-service/internal/config"
	pgstore "phishguard-service/internal/infra/postgres"
	"phishguard-service/internal/seed"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads the built-in scenario pool into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the scenario pool into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	loader := pgstore.NewScenarioLoader(pool)
	scenarios := seed.Scenarios()
	for _, scenario := range scenarios {
		if err := loader.Insert(ctx, scenario); err != nil {
			return err
		}
	}
	log.Printf("seeded %d scenarios", len(scenarios))
	return nil
}
