package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/actuallystonmai/game-recommender/internal/cache"
	"github.com/actuallystonmai/game-recommender/internal/config"
	"github.com/actuallystonmai/game-recommender/internal/dataset"
	"github.com/actuallystonmai/game-recommender/internal/handler"
	"github.com/actuallystonmai/game-recommender/internal/ingest"
	"github.com/actuallystonmai/game-recommender/internal/recommend"
	"github.com/actuallystonmai/game-recommender/internal/repository"
	"github.com/actuallystonmai/game-recommender/internal/router"
	"github.com/actuallystonmai/game-recommender/internal/service"
	"github.com/actuallystonmai/game-recommender/internal/steam"
	"github.com/actuallystonmai/game-recommender/seeds"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to parse database config %v", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatalf("database not ready: %v", err)
	}
	log.Println("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			log.Fatalf("failed to migrate down %v", err)
		}
		log.Println("migrations dropped")
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		log.Fatalf("failed to migrate up %v", err)
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to parse redis config %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	recCache := cache.NewCache(redisClient, cfg.CacheTTL)

	repo := repository.NewRepository(pool)

	// ------------ Dataset Import ---------------
	// for importing a raw wide-schema dataset using CLI command
	if len(os.Args) > 1 && os.Args[1] == "import" {
		if err := runImport(ctx, cfg, repo, recCache, os.Args[2:]); err != nil {
			log.Fatalf("failed to import dataset %v", err)
		}
		return
	}

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, repo, cfg.ImportWorkers); err != nil {
		log.Fatalf("failed to check seed %v", err)
	}

	// ------------ Load Catalog & Indices ---------------
	records, err := repo.ListGames(ctx)
	if err != nil {
		log.Fatalf("failed to list games %v", err)
	}
	catalog, tree, graph, err := dataset.Assemble(records)
	if err != nil {
		log.Fatalf("failed to assemble catalog %v", err)
	}
	log.Printf("loaded %d games", len(catalog))

	// ---------------- Server --------------------
	engine := recommend.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano())))
	steamClient := steam.NewClient(cfg.SteamAPIKey, cfg.SteamAPIURL, cfg.SteamTimeout)
	svc := service.NewService(catalog, tree, graph, engine, recCache, steamClient)
	h := handler.NewHandler(svc)

	log.Printf("Server running on %s", cfg.Addr())
	log.Fatal(http.ListenAndServe(cfg.Addr(), router.Setup(h)))
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Printf("waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations dropped successfully")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations applied successfully")
	return nil
}

// Build catalog and graph from a raw wide-schema CSV, store the compact
// dataset in Postgres, and invalidate cached recommendations. An optional
// second argument also writes the compact dataset to a CSV file.
func runImport(ctx context.Context, cfg *config.Config, repo *repository.Repository,
	recCache *cache.Cache, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: server import <raw.csv> [compact-out.csv]")
	}

	rows, err := dataset.ReadFile(args[0])
	if err != nil {
		return err
	}

	builder := ingest.NewBuilder(cfg.ImportWorkers)
	catalog, graph, err := builder.Build(ctx, rows)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	records, err := dataset.EncodeCatalog(catalog, graph)
	if err != nil {
		return err
	}
	if err := repo.SaveGames(ctx, records); err != nil {
		return err
	}
	log.Printf("imported %d games", len(records))

	if err := recCache.Clear(ctx); err != nil {
		log.Printf("failed to clear recommendation cache: %v", err)
	}

	if len(args) > 1 {
		if err := dataset.WriteFile(args[1], catalog, graph); err != nil {
			return err
		}
		log.Printf("wrote compact dataset to %s", args[1])
	}
	return nil
}

func checkSeed(ctx context.Context, repo *repository.Repository, workers int) error {
	count, err := repo.CountGames(ctx)
	if err != nil {
		return fmt.Errorf("check games count: %w", err)
	}
	if count > 0 {
		log.Printf("database already seeded (%d games), skipping", count)
		return nil
	}
	return seeds.Setup(ctx, repo, workers)
}
