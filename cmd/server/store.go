package main

import (
	"context"
	"fmt"

	"github.com/diewo77/glasspro/internal/config"
	"github.com/diewo77/glasspro/internal/db"
	"github.com/diewo77/glasspro/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// openStore builds the key-value backend selected by STORE_DRIVER.
// The returned func releases the underlying connection.
func openStore(ctx context.Context, cfg config.StoreConfig, log logrus.FieldLogger) (store.Store, func(), error) {
	switch cfg.Driver {
	case "memory":
		log.Warn("using in-memory store, state is lost on restart")
		return store.NewMemory(), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		rs := store.NewRedisStore(client, cfg.RedisPrefix)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		log.WithField("addr", cfg.RedisAddr).Info("connected to redis")
		return rs, func() { _ = rs.Close() }, nil
	case "sqlite", "postgres":
		gdb, err := db.ConnectAndMigrate(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return store.NewGormStore(gdb), closer, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
}
