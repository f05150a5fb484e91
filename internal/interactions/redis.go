package interactions

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"bizmatch-engine/internal/domain"
)

// Redis keys: one set of listing ids per interaction kind, under stable names
// so external tooling (or a future server sync) can read them directly.
const (
	KeyFavorites  = "bizmatch:favorites"
	KeyInterested = "bizmatch:interested"
	KeyDismissed  = "bizmatch:dismissed"
)

// Redis backs the interaction store with a shared redis instance, for setups
// where the engine's state should outlive the host machine.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func OpenRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("interactions: redis ping: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, listingID string) (domain.InteractionRecord, error) {
	rec := domain.InteractionRecord{ListingID: listingID}

	pipe := r.client.Pipeline()
	fav := pipe.SIsMember(ctx, KeyFavorites, listingID)
	intr := pipe.SIsMember(ctx, KeyInterested, listingID)
	dis := pipe.SIsMember(ctx, KeyDismissed, listingID)
	if _, err := pipe.Exec(ctx); err != nil {
		return rec, fmt.Errorf("interactions: redis get %s: %w", listingID, err)
	}

	rec.Favorite = fav.Val()
	rec.Interest = intr.Val()
	rec.Dismissed = dis.Val()
	return rec, nil
}

func (r *Redis) SetFavorite(ctx context.Context, listingID string, v bool) error {
	return r.set(ctx, KeyFavorites, listingID, v)
}

func (r *Redis) SetInterest(ctx context.Context, listingID string, v bool) error {
	return r.set(ctx, KeyInterested, listingID, v)
}

func (r *Redis) SetDismissed(ctx context.Context, listingID string, v bool) error {
	return r.set(ctx, KeyDismissed, listingID, v)
}

func (r *Redis) set(ctx context.Context, key, listingID string, v bool) error {
	var err error
	if v {
		err = r.client.SAdd(ctx, key, listingID).Err()
	} else {
		err = r.client.SRem(ctx, key, listingID).Err()
	}
	if err != nil {
		return fmt.Errorf("interactions: redis set %s %s: %w", key, listingID, err)
	}
	return nil
}

func (r *Redis) List(ctx context.Context, pred Predicate) ([]string, error) {
	ids := make(map[string]domain.InteractionRecord)

	collect := func(key string, mark func(*domain.InteractionRecord)) error {
		members, err := r.client.SMembers(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("interactions: redis list %s: %w", key, err)
		}
		for _, id := range members {
			rec := ids[id]
			rec.ListingID = id
			mark(&rec)
			ids[id] = rec
		}
		return nil
	}

	if err := collect(KeyFavorites, func(r *domain.InteractionRecord) { r.Favorite = true }); err != nil {
		return nil, err
	}
	if err := collect(KeyInterested, func(r *domain.InteractionRecord) { r.Interest = true }); err != nil {
		return nil, err
	}
	if err := collect(KeyDismissed, func(r *domain.InteractionRecord) { r.Dismissed = true }); err != nil {
		return nil, err
	}

	var out []string
	for id, rec := range ids {
		if pred(rec) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *Redis) Close() error { return r.client.Close() }
