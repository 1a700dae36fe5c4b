package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func testClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func TestSetGetDeleteJSON(t *testing.T) {
	t.Parallel()
	rdb, _ := testClient(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, rdb, "k", payload{Name: "a", Count: 2}, 0))

	var got payload
	found, err := GetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)

	require.NoError(t, Delete(ctx, rdb, "k"))
	found, err = GetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTTLExpiry(t *testing.T) {
	t.Parallel()
	rdb, mr := testClient(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, rdb, "k", payload{Name: "a"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got payload
	found, err := GetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientFailsOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.NoError(t, SetJSON(ctx, nil, "k", payload{}, 0))
	var got payload
	found, err := GetJSON(ctx, nil, "k", &got)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, Delete(ctx, nil, "k"))
}

func TestConnectUnreachable(t *testing.T) {
	t.Parallel()
	// Nothing listens here; Connect degrades to a nil client.
	assert.Nil(t, Connect("127.0.0.1:1"))
}
