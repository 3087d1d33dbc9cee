package bloom

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisBacked is a BitSet stored in Redis, grounded on the teacher's
// internal/pkg/bloom.redisBitSet + internal/pkg/redis.Cache. It can back a
// Filter through NewWithBitSet with a caller-supplied *redis.Client. Nothing
// in the registry or the Detector constructs it: their pre-filters are
// always in-memory, so the detect path stays synchronous and I/O-free
// (spec.md §5). It is the only component in this repository that performs
// network I/O.
type RedisBacked struct {
	client *redis.Client
	key    string
}

// NewRedisBacked creates a distributed BitSet keyed under key.
func NewRedisBacked(client *redis.Client, key string) *RedisBacked {
	return &RedisBacked{client: client, key: key}
}

func (r *RedisBacked) Set(ctx context.Context, offsets []uint) error {
	pipe := r.client.Pipeline()
	for _, off := range offsets {
		pipe.SetBit(ctx, r.key, int64(off), 1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisBacked) Check(ctx context.Context, offsets []uint) (bool, error) {
	pipe := r.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(offsets))
	for i, off := range offsets {
		cmds[i] = pipe.GetBit(ctx, r.key, int64(off))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	for _, cmd := range cmds {
		val, err := cmd.Result()
		if err != nil {
			return false, err
		}
		if val == 0 {
			return false, nil
		}
	}
	return true, nil
}
