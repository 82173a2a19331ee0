package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phishguard-service/internal/app"
	"phishguard-service/internal/config"
	"phishguard-service/internal/infra/memory"
	pgstore "phishguard-service/internal/infra/postgres"
	redisstore "phishguard-service/internal/infra/redis"
	"phishguard-service/internal/seed"
	transport "phishguard-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the training server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.ScenarioLoader = memory.NewStaticScenarioLoader(seed.Scenarios())
	if pool != nil {
		loader = pgstore.NewScenarioLoader(pool)
	}

	scenarioTTL := config.Duration(cfg.Scenarios.TTL, 10*time.Minute)
	var scenarios app.ScenarioStore
	if redisClient != nil {
		scenarios = redisstore.NewScenarioStore(redisClient, loader, scenarioTTL)
	} else {
		scenarios = memory.NewScenarioStore(loader, scenarioTTL)
	}

	var profiles app.ProfileStore
	if redisClient != nil {
		profiles = redisstore.NewProfileStore(redisClient)
	} else {
		profiles = memory.NewProfileStore()
	}

	quizDuration := config.Duration(cfg.Quiz.Duration, app.DefaultQuizDuration)
	service := app.NewTrainingService(
		memory.NewSessionStore(),
		scenarios,
		profiles,
		app.WithQuizDuration(quizDuration),
	)
	wsHandler := transport.NewWSHandler(service)
	apiHandler := transport.NewAPIHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	apiHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting phishguard service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
