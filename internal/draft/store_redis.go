package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"wastetrack/pkg/platform/sentinel"
)

// RedisStore persists declarations as JSON values keyed per account, with a
// per-account set tracking membership for listing.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed declaration store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func submissionKey(accountID, id uuid.UUID) string {
	return fmt.Sprintf("submission:%s:%s", accountID, id)
}

func accountKey(accountID uuid.UUID) string {
	return fmt.Sprintf("submission-ids:%s", accountID)
}

func (r *RedisStore) Create(ctx context.Context, s *Submission) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	ok, err := r.client.SetNX(ctx, submissionKey(s.AccountID, s.ID), raw, 0).Result()
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	if !ok {
		return sentinel.ErrConflict
	}
	if err := r.client.SAdd(ctx, accountKey(s.AccountID), s.ID.String()).Err(); err != nil {
		return fmt.Errorf("index submission: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, accountID, id uuid.UUID) (*Submission, error) {
	raw, err := r.client.Get(ctx, submissionKey(accountID, id)).Bytes()
	if err == redis.Nil {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	var s Submission
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unmarshal submission: %w", err)
	}
	if s.State.Status.Terminal() {
		return nil, sentinel.ErrNotFound
	}
	return &s, nil
}

func (r *RedisStore) Update(ctx context.Context, s *Submission) error {
	key := submissionKey(s.AccountID, s.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check submission: %w", err)
	}
	if exists == 0 {
		return sentinel.ErrNotFound
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	return nil
}

func (r *RedisStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Submission, error) {
	ids, err := r.client.SMembers(ctx, accountKey(accountID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list submission ids: %w", err)
	}
	var out []*Submission
	for _, rawID := range ids {
		id, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		s, err := r.Get(ctx, accountID, id)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
