package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/MicroblogApp/social-service/internal/repository"
	"github.com/MicroblogApp/social-service/internal/repository/postgres"
	"github.com/MicroblogApp/social-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

// fakeCache is an in-memory stand-in for the redis Default repository.
type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.data[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = string(valueJSON)
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeCache) Incr(ctx context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var deleted int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

// fakeMQ records published messages per queue.
type fakeMQ struct {
	published map[string][][]byte
	publishErr error
}

func newFakeMQ() *fakeMQ {
	return &fakeMQ{published: make(map[string][][]byte)}
}

func (f *fakeMQ) Publish(queue string, body []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published[queue] = append(f.published[queue], body)
	return nil
}

func newTestRepo(pg postgres.PostgresRepository, cache redisrepo.Default) *repository.Repository {
	return &repository.Repository{
		Postgres: &pg,
		Redis: &redisrepo.RedisRepository{Default: cache},
	}
}
