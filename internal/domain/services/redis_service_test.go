package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, InterfaceRedisService) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisService(client)
}

func TestNewRedisServiceNilClient(t *testing.T) {
	assert.Nil(t, NewRedisService(nil))
}

func TestRedisServiceJSON(t *testing.T) {
	mr, svc := newTestRedis(t)
	require.NoError(t, svc.Ping())

	require.NoError(t, svc.Set("k", map[string]int{"a": 1}, time.Minute))
	var got map[string]int
	require.NoError(t, svc.Get("k", &got))
	assert.Equal(t, 1, got["a"])

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, svc.Get("k", &got), redis.Nil)
}

func TestRedisServiceRawAndPrefix(t *testing.T) {
	_, svc := newTestRedis(t)

	require.NoError(t, svc.SetRaw("cache:/a", []byte("A"), 0))
	require.NoError(t, svc.SetRaw("cache:/b", []byte("B"), 0))
	require.NoError(t, svc.SetRaw("dashboard:2025-01", []byte("{}"), 0))

	raw, err := svc.GetRaw("cache:/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), raw)

	n, err := svc.DeleteByPrefix("cache:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = svc.GetRaw("cache:/b")
	assert.ErrorIs(t, err, redis.Nil)

	require.NoError(t, svc.Delete("dashboard:2025-01"))
	_, err = svc.GetRaw("dashboard:2025-01")
	assert.ErrorIs(t, err, redis.Nil)
}
