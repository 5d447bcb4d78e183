package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite holds a throwaway redis for repository tests.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New starts a redis container for the test. The test is skipped in -short
// mode or when no docker daemon answers.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis suite skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis: %v", err)
	}

	// never returns error
	_ = resource.Expire(expireDuration)

	pool.MaxWait = maxWaitDuration

	var client *redis.Client
	if err = pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})
		return client.Ping(ctx).Err()
	}); err != nil {
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			logger.Error("could not purge redis", "error", purgeErr)
		}

		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn("could not close redis client", "error", closeErr)
		}

		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Errorf("could not purge redis: %v", purgeErr)
		}
	})

	st := &Suite{
		T:       t,
		Logger:  logger,
		Storage: client,
	}
	st.Flush(ctx)

	return ctx, st
}

// Flush empties the database between cases sharing one container.
func (that *Suite) Flush(ctx context.Context) {
	that.Helper()

	if err := that.Storage.FlushDB(ctx).Err(); err != nil {
		that.Fatalf("could not flush database: %v", err)
	}
}
