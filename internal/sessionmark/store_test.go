// AngelaMos | 2026
// store_test.go

package sessionmark

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yembez/quittancesimple/internal/core"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client), mr
}

func TestPutGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	marker := Marker{Email: "c@d.com", PlanTier: "automatic"}
	require.NoError(t, store.Put(context.Background(), "cs_123", marker))

	got, err := store.Get(context.Background(), "cs_123")
	require.NoError(t, err)
	assert.Equal(t, marker, got)
}

func TestGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "cs_unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestMarkerExpires(t *testing.T) {
	store, mr := newTestStore(t)

	marker := Marker{Email: "c@d.com", PlanTier: "connected_plus"}
	require.NoError(t, store.Put(context.Background(), "cs_123", marker))

	mr.FastForward(markerTTL + 1)

	_, err := store.Get(context.Background(), "cs_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
