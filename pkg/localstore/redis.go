package localstore

import (
	"context"
	"fmt"

	pkgredis "github.com/jordanveras/threadline-backend/pkg/redis"
)

// Redis stores snapshots in Redis under namespaced keys, for deployments that
// want carts shared across instances.
type Redis struct {
	client *pkgredis.Client
}

func NewRedis(client *pkgredis.Client) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.client.SnapshotKey(key))
	if err != nil {
		if pkgredis.IsNil(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading snapshot %q: %w", key, err)
	}
	return []byte(value), nil
}

func (r *Redis) Save(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, r.client.SnapshotKey(key), string(payload), 0); err != nil {
		return fmt.Errorf("saving snapshot %q: %w", key, err)
	}
	return nil
}
