package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	pair, err := iss.Issue("U1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	uid, err := iss.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "U1", uid)
}

func TestIssuer_RejectsForeignSecret(t *testing.T) {
	pair, err := NewIssuer("a", time.Hour).Issue("U1")
	require.NoError(t, err)

	_, err = NewIssuer("b", time.Hour).Verify(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Expired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	iss.now = func() time.Time { return issuedAt }
	pair, err := iss.Issue("U1")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Verify(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestIssuer_Garbage(t *testing.T) {
	_, err := NewIssuer("secret", time.Hour).Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
