// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/staffdesk/internal/config"
	"github.com/carterperez-dev/staffdesk/internal/core"
)

func newTestTokenManager(t *testing.T, secret string) *TokenManager {
	t.Helper()

	tm, err := NewTokenManager(config.SessionConfig{
		Secret: secret,
		Issuer: "staffdesk-test",
	})
	require.NoError(t, err)
	return tm
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager(config.SessionConfig{})
	assert.Error(t, err)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager(t, "0123456789abcdef0123456789abcdef")

	token, err := tm.CreateSessionToken("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := tm.VerifySessionToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", subject)
}

func TestVerifySessionTokenRejectsWrongKey(t *testing.T) {
	signer := newTestTokenManager(t, "0123456789abcdef0123456789abcdef")
	verifier := newTestTokenManager(t, "another-secret-another-secret-00")

	token, err := signer.CreateSessionToken("user-42")
	require.NoError(t, err)

	_, err = verifier.VerifySessionToken(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestVerifySessionTokenRejectsWrongIssuer(t *testing.T) {
	signer := newTestTokenManager(t, "0123456789abcdef0123456789abcdef")

	other, err := NewTokenManager(config.SessionConfig{
		Secret: "0123456789abcdef0123456789abcdef",
		Issuer: "someone-else",
	})
	require.NoError(t, err)

	token, err := other.CreateSessionToken("user-42")
	require.NoError(t, err)

	_, err = signer.VerifySessionToken(context.Background(), token)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestVerifySessionTokenRejectsGarbage(t *testing.T) {
	tm := newTestTokenManager(t, "0123456789abcdef0123456789abcdef")

	_, err := tm.VerifySessionToken(context.Background(), "not.a.token")
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}
