package testutil

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory xredis.Client good enough for leaderboard
// tests: sorted sets are plain maps sorted on read.
type MockRedisClient struct {
	sets map[string]map[string]float64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{sets: make(map[string]map[string]float64)}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	_, ok := m.sets[key]
	return ok, nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.sets, key)
	}

	return nil
}

func (m *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	m.set(key)[z.Member.(string)] = z.Score
	return nil
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr float64, member string) error {
	m.set(key)[member] += incr
	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	members := m.sorted(key)
	if offset >= len(members) {
		return nil, nil
	}

	members = members[offset:]
	if limit < len(members) {
		members = members[:limit]
	}

	return members, nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	for i, z := range m.sorted(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (m *MockRedisClient) ZRem(ctx context.Context, key string, members ...string) error {
	for _, member := range members {
		delete(m.set(key), member)
	}

	return nil
}

func (m *MockRedisClient) set(key string) map[string]float64 {
	if _, ok := m.sets[key]; !ok {
		m.sets[key] = make(map[string]float64)
	}

	return m.sets[key]
}

func (m *MockRedisClient) sorted(key string) []redis.Z {
	result := []redis.Z{}
	for member, score := range m.sets[key] {
		result = append(result, redis.Z{Member: member, Score: score})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}

		return result[i].Member.(string) > result[j].Member.(string)
	})

	return result
}
