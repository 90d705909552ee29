// Package cache stores encoded layout results.
//
// Layouts are deterministic in their items and params, so an entry keyed by
// the content hash of both is exact and never needs invalidating; TTLs only
// bound storage. Backends:
//
//   - [NullCache]: stores nothing (--no-cache, tests)
//   - [FileCache]: hash-sharded JSON files (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [MongoCache]: documents with a TTL index on expires_at
//
// [Open] builds a backend from [Settings].
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// TTLLayout is the default lifetime of a cached layout.
const TTLLayout = 7 * 24 * time.Hour

// Backend names a cache implementation.
type Backend string

const (
	BackendNone  Backend = "none"
	BackendFile  Backend = "file"
	BackendRedis Backend = "redis"
	BackendMongo Backend = "mongo"
)

// ParseBackend validates a backend name. The empty string selects the file
// backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendNone, BackendFile, BackendRedis, BackendMongo:
		return b, nil
	case "":
		return BackendFile, nil
	}
	return "", fmt.Errorf("unknown cache backend %q (want file, redis, mongo or none)", s)
}

// Settings configures [Open].
type Settings struct {
	Backend Backend

	Dir string // file

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open returns the backend selected by s. Remote backends are pinged before
// Open returns; transient ping failures are retried.
func Open(ctx context.Context, s Settings) (Cache, error) {
	switch s.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile, "":
		c, err := NewFileCache(s.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, s.RedisAddr, s.RedisPassword, s.RedisDB)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, s.MongoURI, s.MongoDatabase, s.MongoCollection)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", s.Backend)
}
