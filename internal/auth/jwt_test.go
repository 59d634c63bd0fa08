package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify_RoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.Sign("53e2ede0-7d81-45c5-94a5-873887715c90", "luki@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "53e2ede0-7d81-45c5-94a5-873887715c90", claims.ID)
	assert.Equal(t, "luki@example.com", claims.Email)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Minute)
	assert.Nil(t, claims.ExpiresAt, "tokens carry no expiry")
}

func TestSign_PayloadShape(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.Sign("user-1", "a@b.co")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Len(t, payload, 3)
	assert.Contains(t, payload, "id")
	assert.Contains(t, payload, "email")
	assert.Contains(t, payload, "iat")
}

func TestVerify_Rejects(t *testing.T) {
	m := NewManager("test-secret")

	otherSigned, err := NewManager("other-secret").Sign("user-1", "a@b.co")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: "user-1", Email: "a@b.co"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	missingEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: "user-1"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "wrong.token.input"},
		{name: "garbage", token: "abc"},
		{name: "wrong_secret", token: otherSigned},
		{name: "alg_none", token: noneToken},
		{name: "missing_email", token: missingEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := m.Verify(tt.token)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
