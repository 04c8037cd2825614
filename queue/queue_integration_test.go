//go:build integration

package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"
	tContainer "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/octabyte/quizmaster-client/enums"
	"github.com/octabyte/quizmaster-client/models"
	"github.com/octabyte/quizmaster-client/session"
)

type RabbitMQTestSuite struct {
	suite.Suite
	ctx       context.Context
	container tContainer.Container
	uri       string
}

func (s *RabbitMQTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := tContainer.ContainerRequest{
		Image:        "rabbitmq:3-management",
		ExposedPorts: []string{"5672/tcp", "15672/tcp"},
		WaitingFor:   wait.ForLog("Server startup complete"),
	}
	container, err := tContainer.GenericContainer(s.ctx, tContainer.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)

	port, err := container.MappedPort(s.ctx, "5672")
	s.Require().NoError(err)

	s.uri = fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

func (s *RabbitMQTestSuite) TearDownSuite() {
	s.Require().NoError(s.container.Terminate(s.ctx))
}

func (s *RabbitMQTestSuite) TestSessionEventRoundTrip() {
	conn, err := NewConnection(ConnectionConfig{
		URI:      s.uri,
		Exchange: &ExchangeConfig{Name: "quiz.events", Type: ExchangeTopic},
	})
	s.Require().NoError(err)
	defer conn.Close()

	q, err := conn.Ch.QueueDeclare("", false, true, true, false, nil)
	s.Require().NoError(err)
	s.Require().NoError(conn.Ch.QueueBind(q.Name, "session.#", "quiz.events", false, nil))

	consumeCh, err := conn.Conn.Channel()
	s.Require().NoError(err)
	deliveries, err := consumeCh.Consume(q.Name, "", true, false, false, false, nil)
	s.Require().NoError(err)

	events := NewSessionEventPublisher(NewPublisher(conn.Ch, PublishConfig{
		Exchange:   "quiz.events",
		RoutingKey: "session.login",
	}), 1, time.Second)

	events.Observe(session.Event{
		Type:    session.EventLogin,
		Session: models.Session{User: &models.User{ID: "5", Role: enums.RoleAdmin}, Token: "t"},
		At:      time.Now(),
	})
	s.Require().NoError(events.Close())

	select {
	case d := <-deliveries:
		var got SessionEvent
		s.Require().NoError(json.Unmarshal(d.Body, &got))
		s.Equal("login", got.Type)
		s.Equal("5", got.UserID)
		s.Equal("application/json", d.ContentType)
	case <-time.After(10 * time.Second):
		s.Fail("no session event delivered")
	}
}

func TestRabbitMQTestSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQTestSuite))
}
