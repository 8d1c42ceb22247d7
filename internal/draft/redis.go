package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "draft:"

// RedisStore keeps drafts in Redis so in-flight drafts survive restarts.
// Same-chat Update calls are serialized in-process; the bot is the only
// writer for its keys.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	mu sync.Mutex
}

// NewRedisStore wraps an existing Redis client. A non-positive ttl keeps
// drafts for 24 hours; an explicit TTL prevents abandoned drafts from
// accumulating.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(chatID int64) string {
	return fmt.Sprintf("%s%d", redisKeyPrefix, chatID)
}

// Get returns the draft for a chat if it exists.
func (s *RedisStore) Get(ctx context.Context, chatID int64) (Draft, bool, error) {
	raw, err := s.client.Get(ctx, redisKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, fmt.Errorf("draft get: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return Draft{}, false, fmt.Errorf("draft decode: %w", err)
	}
	return d, true, nil
}

// Put replaces the draft for a chat.
func (s *RedisStore) Put(ctx context.Context, chatID int64, d Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft encode: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(chatID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("draft put: %w", err)
	}
	return nil
}

// Update applies fn to the stored draft, creating a fresh one if absent.
func (s *RedisStore) Update(ctx context.Context, chatID int64, fn func(*Draft)) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok, err := s.Get(ctx, chatID)
	if err != nil {
		return Draft{}, err
	}
	if !ok {
		d = New()
	}
	fn(&d)
	if err := s.Put(ctx, chatID, d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Remove deletes the draft for a chat.
func (s *RedisStore) Remove(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, redisKey(chatID)).Err(); err != nil {
		return fmt.Errorf("draft remove: %w", err)
	}
	return nil
}
