package token

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/octabyte/quizmaster-client/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return raw
}

func TestDecodeValidToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := sign(t, jwt.MapClaims{"sub": "42", "role": "admin", "exp": exp.Unix()})

	claims, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, enums.RoleAdmin, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Equal(exp))
	assert.Nil(t, claims.IssuedAt)
}

func TestDecodeIgnoresSignature(t *testing.T) {
	raw := sign(t, jwt.MapClaims{"sub": "7", "role": "member"})
	tampered := raw[:len(raw)-4] + "AAAA"

	claims, err := Decode(tampered)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, enums.RoleMember, claims.Role)
}

func TestDecodeMalformed(t *testing.T) {
	noSub := sign(t, jwt.MapClaims{"role": "member"})
	badPayload := "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte("{not json")) + ".sig"

	testCases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"one segment", "abc"},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"garbage segments", "!!!.???.***"},
		{"payload not json", badPayload},
		{"missing subject", noSub},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedToken))

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr))
		})
	}
}

func TestDecodeRequiresSubject(t *testing.T) {
	for _, claims := range []jwt.MapClaims{
		{"role": "admin"},
		{"sub": "", "role": "admin"},
	} {
		_, err := Decode(sign(t, claims))

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, "missing sub claim", decodeErr.Reason)
	}
}

func TestClaimsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, Claims{}.Expired(now), "no exp claim never expires")
	assert.True(t, Claims{ExpiresAt: &past}.Expired(now))
	assert.True(t, Claims{ExpiresAt: &now}.Expired(now))
	assert.False(t, Claims{ExpiresAt: &future}.Expired(now))
}
