// AngelaMos | 2026
// store.go

package sessionmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yembez/quittancesimple/internal/core"
)

const (
	keyPrefix = "sessionmark:"

	// Markers outlive any realistic checkout-to-confirmation gap.
	markerTTL = 24 * time.Hour
)

// Marker records which email and tier a checkout session belongs to, so
// the confirmation page can recover its context after a full redirect.
type Marker struct {
	Email    string `json:"email"`
	PlanTier string `json:"plan_tier"`
}

type Store struct {
	redis *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

func (s *Store) Put(
	ctx context.Context,
	sessionID string,
	marker Marker,
) error {
	payload, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("marshal session marker: %w", err)
	}

	err = s.redis.Set(ctx, keyPrefix+sessionID, payload, markerTTL).Err()
	if err != nil {
		return fmt.Errorf("store session marker: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (Marker, error) {
	payload, err := s.redis.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Marker{}, fmt.Errorf(
				"session marker %s: %w",
				sessionID,
				core.ErrNotFound,
			)
		}
		return Marker{}, fmt.Errorf("load session marker: %w", err)
	}

	var marker Marker
	if err := json.Unmarshal(payload, &marker); err != nil {
		return Marker{}, fmt.Errorf("decode session marker: %w", err)
	}

	return marker, nil
}
