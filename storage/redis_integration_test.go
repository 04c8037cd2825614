//go:build integration

package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	tContainer "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/octabyte/quizmaster-client/db/redis"
)

type RedisContainerTestSuite struct {
	suite.Suite
	ctx       context.Context
	container tContainer.Container
	addr      string
}

func (s *RedisContainerTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := tContainer.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}
	container, err := tContainer.GenericContainer(s.ctx, tContainer.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "6379")
	s.Require().NoError(err)

	s.addr = fmt.Sprintf("%s:%s", host, port.Port())
}

func (s *RedisContainerTestSuite) TearDownSuite() {
	s.Require().NoError(s.container.Terminate(s.ctx))
}

func (s *RedisContainerTestSuite) TestRoundTripAgainstRealServer() {
	client, err := redis.NewRedisClient(s.ctx, redis.Config{Addr: s.addr})
	s.Require().NoError(err)
	defer client.Close()

	store := NewRedis(client, "itest")
	s.Require().NoError(store.Set(s.ctx, TokenKey, "abc"))

	value, ok, err := store.Get(s.ctx, TokenKey)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("abc", value)

	s.Require().NoError(store.Remove(s.ctx, TokenKey))
	_, ok, err = store.Get(s.ctx, TokenKey)
	s.Require().NoError(err)
	s.False(ok)
}

func TestRedisContainerSuite(t *testing.T) {
	suite.Run(t, new(RedisContainerTestSuite))
}
