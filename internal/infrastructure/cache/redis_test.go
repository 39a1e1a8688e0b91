package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluemoon-http-service/internal/infrastructure/config"
)

func TestNewRedisClientDisabled(t *testing.T) {
	client, err := NewRedisClient(&config.Config{RedisEnabled: false})
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(&config.Config{
		RedisEnabled: true,
		RedisHost:    mr.Host(),
		RedisPort:    mr.Port(),
	})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))
}

func TestNewRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	client, err := NewRedisClient(&config.Config{RedisEnabled: true, RedisHost: host, RedisPort: port})
	assert.Error(t, err)
	assert.Nil(t, client)
}
