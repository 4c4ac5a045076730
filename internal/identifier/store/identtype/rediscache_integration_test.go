//go:build integration

package identtype

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"clinid/internal/identifier/models"
	id "clinid/pkg/domain"
	"clinid/pkg/platform/sentinel"
	"clinid/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	inner  *InMemory
	cache  *RedisCache
	logger *slog.Logger
	ctx    context.Context
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ctx = context.Background()
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.inner = NewInMemory()
	s.cache = NewRedisCache(s.inner, s.redis.Client, 5*time.Minute, s.logger)
}

func mustJSON(t *testing.T, typ *models.IdentifierType) []byte {
	t.Helper()
	payload, err := json.Marshal(typ)
	if err != nil {
		t.Fatalf("marshal identifier type: %v", err)
	}
	return payload
}

func (s *RedisCacheSuite) newType(name string) *models.IdentifierType {
	return &models.IdentifierType{
		ID:        id.IdentifierTypeID(uuid.New()),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func (s *RedisCacheSuite) TestReadThroughFillsCache() {
	typ := s.newType("Medical Record Number")
	s.Require().NoError(s.inner.Create(s.ctx, typ))

	found, err := s.cache.FindByID(s.ctx, typ.ID)
	s.Require().NoError(err)
	s.Equal(typ.Name, found.Name)

	// A second cache over an empty inner store can only answer from
	// Redis.
	cold := NewRedisCache(NewInMemory(), s.redis.Client, 5*time.Minute, s.logger)
	found, err = cold.FindByID(s.ctx, typ.ID)
	s.Require().NoError(err)
	s.Equal(typ.Name, found.Name)
}

func (s *RedisCacheSuite) TestMissReturnsNotFound() {
	_, err := s.cache.FindByID(s.ctx, id.IdentifierTypeID(uuid.New()))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisCacheSuite) TestCorruptEntryFallsBackAndRepairs() {
	typ := s.newType("CPF")
	s.Require().NoError(s.inner.Create(s.ctx, typ))

	key := "identtype:" + typ.ID.String()
	s.Require().NoError(s.redis.Client.Set(s.ctx, key, "{not json", 0).Err())

	found, err := s.cache.FindByID(s.ctx, typ.ID)
	s.Require().NoError(err)
	s.Equal(typ.Name, found.Name)

	// The read-through rewrote the entry; a cold cache now serves it.
	cold := NewRedisCache(NewInMemory(), s.redis.Client, 5*time.Minute, s.logger)
	found, err = cold.FindByID(s.ctx, typ.ID)
	s.Require().NoError(err)
	s.Equal(typ.Name, found.Name)
}

func (s *RedisCacheSuite) TestRedisDownDegradesToInner() {
	typ := s.newType("Passport")
	s.Require().NoError(s.inner.Create(s.ctx, typ))

	dead := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer dead.Close()

	cache := NewRedisCache(s.inner, dead, 5*time.Minute, s.logger)
	found, err := cache.FindByID(s.ctx, typ.ID)
	s.Require().NoError(err)
	s.Equal(typ.Name, found.Name)
}

func (s *RedisCacheSuite) TestCreateInvalidatesStaleEntry() {
	typ := s.newType("National ID")
	key := "identtype:" + typ.ID.String()

	stale := *typ
	stale.Name = "Old Name"
	s.Require().NoError(s.redis.Client.Set(s.ctx, key, mustJSON(s.T(), &stale), 0).Err())

	s.Require().NoError(s.cache.Create(s.ctx, typ))

	err := s.redis.Client.Get(s.ctx, key).Err()
	s.Require().ErrorIs(err, redis.Nil, "create drops the stale entry")

	found, err := s.cache.FindByID(s.ctx, typ.ID)
	s.Require().NoError(err)
	s.Equal("National ID", found.Name)
}

func (s *RedisCacheSuite) TestTTLEviction() {
	typ := s.newType("Visit Number")
	s.Require().NoError(s.inner.Create(s.ctx, typ))

	shortTTL := NewRedisCache(s.inner, s.redis.Client, 50*time.Millisecond, s.logger)
	_, err := shortTTL.FindByID(s.ctx, typ.ID)
	s.Require().NoError(err)

	time.Sleep(90 * time.Millisecond)

	key := "identtype:" + typ.ID.String()
	err = s.redis.Client.Get(s.ctx, key).Err()
	s.Require().ErrorIs(err, redis.Nil)
}
