package otp

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/1Garv23/share-smote/models"

	"github.com/redis/go-redis/v9"
)

// CredentialStore keeps at most one pending one-time code per email.
// Put overwrites any previous code for the same email (last write wins:
// only one in-flight code should ever be valid). Expiry is enforced lazily
// by the verifier, so implementations do not need a sweeper.
type CredentialStore interface {
	Put(ctx context.Context, email string, cred models.PendingCredential) error
	Get(ctx context.Context, email string) (models.PendingCredential, error)
	Remove(ctx context.Context, email string) error
}

// MemoryCredentialStore is a process-wide map guarded by a mutex. It is the
// default backend for a single-process deployment and for tests.
type MemoryCredentialStore struct {
	mu    sync.RWMutex
	codes map[string]models.PendingCredential
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		codes: make(map[string]models.PendingCredential),
	}
}

func (s *MemoryCredentialStore) Put(ctx context.Context, email string, cred models.PendingCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = cred
	return nil
}

func (s *MemoryCredentialStore) Get(ctx context.Context, email string) (models.PendingCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, exists := s.codes[email]
	if !exists {
		return models.PendingCredential{}, ErrCodeNotFound
	}
	return cred, nil
}

func (s *MemoryCredentialStore) Remove(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

// redisKeyPrefix namespaces pending codes in Redis alongside other cached data.
const redisKeyPrefix = "otp:pending:"

// redisExpiryGrace keeps the record alive in Redis a little past its logical
// TTL so the verifier can still tell "expired" apart from "never issued".
const redisExpiryGrace = time.Minute

// RedisCredentialStore externalizes pending codes to Redis so multiple
// server processes share one view of in-flight codes.
type RedisCredentialStore struct {
	Rdb *redis.Client
}

func NewRedisCredentialStore(rdb *redis.Client) *RedisCredentialStore {
	return &RedisCredentialStore{Rdb: rdb}
}

func (s *RedisCredentialStore) Put(ctx context.Context, email string, cred models.PendingCredential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	ttl := time.Until(cred.ExpiresAt) + redisExpiryGrace
	return s.Rdb.Set(ctx, redisKeyPrefix+email, data, ttl).Err()
}

func (s *RedisCredentialStore) Get(ctx context.Context, email string) (models.PendingCredential, error) {
	data, err := s.Rdb.Get(ctx, redisKeyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.PendingCredential{}, ErrCodeNotFound
		}
		return models.PendingCredential{}, err
	}
	var cred models.PendingCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return models.PendingCredential{}, err
	}
	return cred, nil
}

func (s *RedisCredentialStore) Remove(ctx context.Context, email string) error {
	return s.Rdb.Del(ctx, redisKeyPrefix+email).Err()
}
