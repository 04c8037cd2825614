// Package token decodes access tokens for display purposes. Signatures are never verified here:
// the backend is the only trust boundary, the client only needs the subject and role.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/octabyte/quizmaster-client/enums"
)

var ErrMalformedToken = errors.New("malformed token")

// DecodeError reports a token that could not be decoded into claims.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode token: %s: %v", e.Reason, e.Err)
	}
	return "decode token: " + e.Reason
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedToken, e.Err}
	}
	return []error{ErrMalformedToken}
}

// Claims is the subset of the access token payload the client cares about.
type Claims struct {
	Subject   string
	Role      enums.Role
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an exp claim that is not after now.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}

type payload struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// Decode parses the payload of a compact JWT without verifying its signature.
func Decode(raw string) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, &DecodeError{Reason: "empty token"}
	}
	if strings.Count(raw, ".") != 2 {
		return Claims{}, &DecodeError{Reason: "token must have three segments"}
	}

	var p payload
	if _, _, err := parser.ParseUnverified(raw, &p); err != nil {
		return Claims{}, &DecodeError{Reason: "unparseable token", Err: err}
	}
	// A payload without sub is malformed: every session user carries an id.
	if p.Subject == "" {
		return Claims{}, &DecodeError{Reason: "missing sub claim"}
	}

	claims := Claims{
		Subject: p.Subject,
		Role:    enums.Role(p.Role),
	}
	if p.IssuedAt != nil {
		t := p.IssuedAt.Time
		claims.IssuedAt = &t
	}
	if p.ExpiresAt != nil {
		t := p.ExpiresAt.Time
		claims.ExpiresAt = &t
	}
	return claims, nil
}
