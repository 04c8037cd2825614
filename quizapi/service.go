// Package quizapi wraps every backend endpoint of the quiz platform in a typed method. The token
// attached to each call is read from a storage.TokenSource at call time.
package quizapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/octabyte/quizmaster-client/apiclient"
	"github.com/octabyte/quizmaster-client/models"
	"github.com/octabyte/quizmaster-client/storage"
)

// ErrInvalidInput is returned before any request is sent when an input fails validation.
var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	client   *apiclient.Client
	tokens   storage.TokenSource
	validate *validator.Validate
}

func New(client *apiclient.Client, tokens storage.TokenSource) *Service {
	if tokens == nil {
		tokens = storage.StaticToken("")
	}
	return &Service{
		client:   client,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type call struct {
	method    string
	path      string
	operation string
	query     map[string]string
	body      any
}

func (s *Service) do(ctx context.Context, c call, out any) error {
	tok, err := s.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("read access token: %w", err)
	}

	body, err := s.client.Request(ctx, c.path, apiclient.RequestOptions{
		Method:    c.method,
		Query:     c.query,
		Body:      c.body,
		Token:     tok,
		Operation: c.operation,
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := body.Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", c.method, c.operation, err)
	}
	return nil
}

func (s *Service) check(in any, except ...string) error {
	var err error
	if len(except) > 0 {
		err = s.validate.StructExcept(in, except...)
	} else {
		err = s.validate.Struct(in)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func pageParams(q models.PageQuery) map[string]string {
	params := map[string]string{}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	return params
}
