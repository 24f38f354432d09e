//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"cayley/internal/algebra"
	"cayley/internal/groups/metrics"
	"cayley/internal/groups/store"
	"cayley/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	backend *store.InMemory
	metrics *metrics.Metrics
	cache   *store.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.backend = store.NewInMemory()
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.cache = store.NewRedisCache(s.backend, s.redis.Client, 5*time.Minute, s.metrics, nil, nil)
}

func (s *RedisCacheSuite) TestCreateWarmsCache() {
	ctx := context.Background()
	g := newBuiltGroup(s.T(), algebra.Symmetric, 3, time.Now().UTC())
	s.Require().NoError(s.cache.Create(ctx, g))

	keys, err := s.redis.Keys(ctx, "cayley:group:*")
	s.Require().NoError(err)
	s.Equal([]string{"cayley:group:" + g.ID.String()}, keys)

	found, err := s.cache.FindByID(ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(g.Members, found.Members)
	s.Equal(g.CayleyTable, found.CayleyTable)
	s.Equal(g.CycleGroups, found.CycleGroups)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.CacheLookups.WithLabelValues("hit")))
}

func (s *RedisCacheSuite) TestMissReadsThrough() {
	ctx := context.Background()
	g := newBuiltGroup(s.T(), algebra.Dihedral, 5, time.Now().UTC())
	s.Require().NoError(s.backend.Create(ctx, g), "written behind the cache's back")

	found, err := s.cache.FindByID(ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(g.Name, found.Name)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.CacheLookups.WithLabelValues("miss")))

	_, err = s.cache.FindByID(ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.CacheLookups.WithLabelValues("hit")))
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	g := newBuiltGroup(s.T(), algebra.Cyclic, 4, time.Now().UTC())
	s.Require().NoError(s.cache.Create(ctx, g))

	ttl, err := s.redis.Client.TTL(ctx, "cayley:group:"+g.ID.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, 5*time.Minute)
}

func (s *RedisCacheSuite) TestCorruptEntryFallsBack() {
	ctx := context.Background()
	g := newBuiltGroup(s.T(), algebra.Cyclic, 2, time.Now().UTC())
	s.Require().NoError(s.backend.Create(ctx, g))
	s.Require().NoError(s.redis.Client.Set(ctx, "cayley:group:"+g.ID.String(), "{not json", time.Minute).Err())

	found, err := s.cache.FindByID(ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(g.ID, found.ID)
}
