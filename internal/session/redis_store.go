package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"doc-research-fe/internal/pkg/logger"
)

// RedisStore keeps sessions in Redis as JSON values so multiple instances
// of the shell can share them. Selected when REDIS_URL is configured.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.ILogger
}

func NewRedisStore(redisURL string, ttl time.Duration, log logger.ILogger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisStore{
		client: redis.NewClient(opt),
		ttl:    ttl,
		log:    log,
	}, nil
}

func (r *RedisStore) key(id string) string {
	return "session:" + id
}

func (r *RedisStore) Save(s *Session) {
	payload, err := json.Marshal(s)
	if err != nil {
		r.log.Error("session", "failed to encode session", map[string]interface{}{"error": err.Error(), "session_id": s.Id})
		return
	}
	if err := r.client.Set(context.Background(), r.key(s.Id), payload, r.ttl).Err(); err != nil {
		r.log.Error("session", "failed to save session to redis", map[string]interface{}{"error": err.Error(), "session_id": s.Id})
	}
}

func (r *RedisStore) Get(id string) (*Session, bool) {
	payload, err := r.client.Get(context.Background(), r.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Error("session", "failed to load session from redis", map[string]interface{}{"error": err.Error(), "session_id": id})
		}
		return nil, false
	}
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		r.log.Error("session", "failed to decode session", map[string]interface{}{"error": err.Error(), "session_id": id})
		return nil, false
	}
	return &s, true
}

// Update re-reads, applies fn, and writes back inside a WATCH
// transaction, retrying on contention so a concurrent Save cannot clobber
// the change.
func (r *RedisStore) Update(id string, fn func(*Session)) bool {
	ctx := context.Background()
	key := r.key(id)

	txf := func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}
		var s Session
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		fn(&s)
		out, err := json.Marshal(&s)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < 3; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		switch err {
		case nil:
			return true
		case redis.TxFailedErr:
			continue
		case redis.Nil:
			return false
		default:
			r.log.Error("session", "failed to update session in redis", map[string]interface{}{"error": err.Error(), "session_id": id})
			return false
		}
	}
	r.log.Error("session", "session update lost the watch race repeatedly", map[string]interface{}{"session_id": id})
	return false
}

func (r *RedisStore) Delete(id string) {
	if err := r.client.Del(context.Background(), r.key(id)).Err(); err != nil {
		r.log.Error("session", "failed to delete session from redis", map[string]interface{}{"error": err.Error(), "session_id": id})
	}
}
