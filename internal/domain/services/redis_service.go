package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService is the JSON cache used by the dashboard and the response cache
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	SetRaw(key string, value []byte, expiration time.Duration) error
	GetRaw(key string) ([]byte, error)
	Delete(key string) error
	DeleteByPrefix(prefix string) (int, error)
	Ping() error
}

// RedisService wraps a go-redis client
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService wraps client; it returns nil when client is nil
func NewRedisService(client *redis.Client) InterfaceRedisService {
	if client == nil {
		return nil
	}
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// 1 Set stores value as JSON
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// 2 Get decodes the JSON stored at key into dest. A missing key returns redis.Nil.
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(val, dest)
}

// 3 SetRaw stores bytes as-is
func (s *RedisService) SetRaw(key string, value []byte, expiration time.Duration) error {
	return s.Client.Set(s.Ctx, key, value, expiration).Err()
}

// 4 GetRaw returns the bytes stored at key
func (s *RedisService) GetRaw(key string) ([]byte, error) {
	return s.Client.Get(s.Ctx, key).Bytes()
}

// 5 Delete removes a key
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// 6 DeleteByPrefix removes every key starting with prefix using SCAN
func (s *RedisService) DeleteByPrefix(prefix string) (int, error) {
	deleted := 0
	iter := s.Client.Scan(s.Ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(s.Ctx) {
		if err := s.Client.Del(s.Ctx, iter.Val()).Err(); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, iter.Err()
}

// 7 Ping checks the connection
func (s *RedisService) Ping() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx).Err()
}
