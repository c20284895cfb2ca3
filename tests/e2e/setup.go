//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"shareit/cmd/bootstrap"
	"shareit/cmd/bootstrap/components"
	"shareit/internal/infra/cache"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/config"
	"shareit/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	containersOnce    sync.Once
	postgresContainer testcontainers.Container
	redisContainer    testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

func (i ContainerInfo) Addr() string {
	return i.Host + ":" + i.Port.Port()
}

type environment struct {
	pool   *pgxpool.Pool
	redis  *redis.Client
	router *gin.Engine
	cfg    config.Config
}

// ------------------------------------------------------------
// Per test process setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) environment {
	gin.SetMode(gin.TestMode)
	startContainersOnce(t)

	postgresInfo, err := containerInfo(postgresContainer, "5432/tcp")
	require.NoError(t, err, "failed to read postgres container info")
	redisInfo, err := containerInfo(redisContainer, "6379/tcp")
	require.NoError(t, err, "failed to read redis container info")

	pool, dbConfig := prepareDatabase(t, postgresInfo)

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	cfg.Redis = config.RedisConfig{Addr: redisInfo.Addr(), PoolSize: 5, UserTTL: time.Minute}

	router, app := buildE2EApp(t, pool, cfg)

	rdb := cache.NewRedisClient(cfg.Redis)
	t.Cleanup(func() { _ = rdb.Close() })

	slog.Info("e2e environment ready",
		"postgres", postgresInfo.Addr(),
		"redis", redisInfo.Addr(),
		"database", dbConfig.DBName)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	return environment{pool: pool, redis: rdb, router: router, cfg: cfg}
}

// ------------------------------------------------------------
// Containers, started once per process
// ------------------------------------------------------------
func startContainersOnce(t *testing.T) {
	containersOnce.Do(func() {
		var err error
		postgresContainer, err = startContainer(testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return adminDSN(ContainerInfo{Host: host, Port: port})
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "shareit-e2e"},
		}, 180*time.Second)
		require.NoError(t, err, "failed to start postgres container")

		redisContainer, err = startContainer(testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Labels:       map[string]string{"purpose": "shareit-e2e"},
		}, 60*time.Second)
		require.NoError(t, err, "failed to start redis container")
	})
}

func startContainer(req testcontainers.ContainerRequest, timeout time.Duration) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// ryuk removes the containers when the test binary exits
	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func containerInfo(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

func adminDSN(info ContainerInfo) string {
	return fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", testUser, testPassword, info.Addr())
}

// ------------------------------------------------------------
// Database preparation
// ------------------------------------------------------------
func prepareDatabase(t *testing.T, info ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	// one database per test process
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN(info))
	require.NoError(t, err, "failed to open admin connection")
	defer adminPool.Close()

	var createErr error
	for attempt := range 5 {
		if attempt > 0 {
			backoff := min(time.Duration(500+attempt*500)*time.Millisecond, 3*time.Second)
			slog.Warn("retrying database creation", "attempt", attempt+1, "error", createErr.Error(), "retry_wait", backoff)
			time.Sleep(backoff)
		}
		if _, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName); createErr == nil {
			break
		}
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN(info))
		if err != nil {
			slog.Warn("failed to connect for cleanup", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     info.Host,
		Port:     info.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
		MinConns: 1,
	}

	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err, "failed to connect to database")
	t.Cleanup(pool.Close)

	require.NoError(t, applyMigrations(pool), "failed to apply migrations")
	return pool, dbConfig
}

// applyMigrations runs migrations/*.sql in name order. go test runs in the package
// directory, so the folder is searched upward from there.
func applyMigrations(pool *pgxpool.Pool) error {
	dir, err := findMigrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
		slog.Debug("migration applied", "file", file)
	}
	return nil
}

func findMigrationsDir() (string, error) {
	dir := "migrations"
	for range 4 {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
		dir = filepath.Join("..", dir)
	}
	return "", fmt.Errorf("migrations directory not found")
}

// ------------------------------------------------------------
// E2E application
// ------------------------------------------------------------
func buildE2EApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	app := fx.New(
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() config.Config { return cfg },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.SectionsOption,
		bootstrap.LoggerModule,
		bootstrap.MetricsModule,
		bootstrap.RedisModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, app.Start(ctx), "failed to start fx app")
	require.NotNil(t, router, "fx app started without a router")
	return router, app
}

// ------------------------------------------------------------
// Shared e2e suite
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	env := setupE2EEnvironment(s.T())
	s.DB = env.pool
	s.Redis = env.redis
	s.Router = env.router
	s.Config = env.cfg
}

// SetupSubTest starts every subtest from empty tables and an empty cache.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
	require.NoError(s.T(), s.Redis.FlushDB(context.Background()).Err(), "failed to flush redis")
}
