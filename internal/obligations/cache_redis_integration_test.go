//go:build integration

package obligations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"taxgate/internal/obligations"
	"taxgate/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *obligations.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = obligations.NewRedisCache(s.redis.Client)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestMissThenRoundTrip() {
	ctx := context.Background()

	_, ok, err := s.cache.Get(ctx, "123456789", 2024)
	s.Require().NoError(err)
	s.False(ok)

	stored := []obligations.Obligation{{
		PeriodKey: "24A1",
		Start:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		Due:       time.Date(2024, time.May, 7, 0, 0, 0, 0, time.UTC),
		Status:    obligations.StatusFulfilled,
	}}
	s.Require().NoError(s.cache.Set(ctx, "123456789", 2024, stored))

	got, ok, err := s.cache.Get(ctx, "123456789", 2024)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(stored, got)
}

func (s *RedisCacheSuite) TestKeysScopedPerRegistration() {
	ctx := context.Background()

	s.Require().NoError(s.cache.Set(ctx, "123456789", 2024, []obligations.Obligation{{PeriodKey: "24A1"}}))

	_, ok, err := s.cache.Get(ctx, "987654321", 2024)
	s.Require().NoError(err)
	s.False(ok)
}
