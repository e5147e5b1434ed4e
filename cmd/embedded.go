package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/simonvc/ratedash/internal/cache"
	"github.com/simonvc/ratedash/internal/client"
	"github.com/simonvc/ratedash/internal/config"
	"github.com/simonvc/ratedash/internal/server"
	"github.com/simonvc/ratedash/internal/store"
)

const embeddedAddr = "127.0.0.1:8000"

// newCache picks redis when a URL is configured, otherwise an in-process
// cache.
func newCache(logger *slog.Logger) (cache.Cache, error) {
	if cfg.Cache.RedisURL == "" {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(cfg.Cache.RedisURL, "ratedash:", logger)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return rc, nil
}

func cacheTTL() time.Duration {
	if cfg.Cache.TTL > 0 {
		return cfg.Cache.TTL
	}
	return server.DefaultCacheTTL
}

// startEmbedded runs an API server on the local database in the background
// and waits until it answers. The returned func releases it.
func startEmbedded(logger *slog.Logger) (string, func(), error) {
	st, err := store.Open(flagDB)
	if err != nil {
		return "", nil, fmt.Errorf("open database: %w", err)
	}
	c, err := newCache(logger)
	if err != nil {
		st.Close()
		return "", nil, err
	}
	cleanup := func() {
		c.Close()
		st.Close()
	}

	srv := server.New(st, embeddedAddr, server.WithLogger(logger), server.WithCache(c, cacheTTL()))
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("embedded server error: %v", err)
		}
	}()
	apiAddr := "http://" + embeddedAddr

	// Wait for server to be ready
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pinger := client.New(apiAddr)
	for {
		if err := pinger.Ping(ctx); err == nil {
			break
		}
		if ctx.Err() != nil {
			cleanup()
			return "", nil, fmt.Errorf("timeout waiting for embedded server")
		}
		time.Sleep(50 * time.Millisecond)
	}
	return apiAddr, cleanup, nil
}

func stderrLogger() *slog.Logger {
	return config.NewLogger(os.Stderr, flagLogLevel)
}
