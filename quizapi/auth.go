package quizapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/octabyte/quizmaster-client/models"
)

var ErrEmptyToken = errors.New("login response carries no access token")

func (s *Service) Register(ctx context.Context, in models.RegisterRequest) (models.Message, error) {
	var out models.Message
	if err := s.check(in); err != nil {
		return out, err
	}
	err := s.do(ctx, call{method: http.MethodPost, path: "/auth/register", operation: "/auth/register", body: in}, &out)
	return out, err
}

// Login exchanges credentials for an access token. It does not touch the session; hand the
// token to session.Store.Login for that.
func (s *Service) Login(ctx context.Context, in models.Credentials) (models.TokenResponse, error) {
	var out models.TokenResponse
	if err := s.check(in); err != nil {
		return out, err
	}
	if err := s.do(ctx, call{method: http.MethodPost, path: "/auth/login", operation: "/auth/login", body: in}, &out); err != nil {
		return out, err
	}
	if out.AccessToken == "" {
		return out, ErrEmptyToken
	}
	return out, nil
}
