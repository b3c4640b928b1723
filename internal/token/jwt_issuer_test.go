package token_test

import (
	"testing"
	"time"

	"ecofinds/internal/token"

	"github.com/stretchr/testify/assert"
)

func newIssuer() *token.JWTIssuer {
	return token.NewJWTIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := newIssuer()

	pair, err := issuer.IssuePair(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	userID, err := issuer.VerifyAccess(pair.Access)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	userID, err = issuer.VerifyRefresh(pair.Refresh)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

// accessをrefreshとして使う（逆も）のは不可
func TestJWTIssuer_RejectsWrongTokenType(t *testing.T) {
	issuer := newIssuer()

	pair, err := issuer.IssuePair(42)
	assert.NoError(t, err)

	_, err = issuer.VerifyRefresh(pair.Access)
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = issuer.VerifyAccess(pair.Refresh)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestJWTIssuer_RejectsOtherSecret(t *testing.T) {
	other := token.NewJWTIssuer("other-secret", 15*time.Minute, 7*24*time.Hour)

	pair, err := other.IssuePair(42)
	assert.NoError(t, err)

	issuer := newIssuer()

	_, err = issuer.VerifyAccess(pair.Access)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestJWTIssuer_RejectsExpired(t *testing.T) {
	issuer := token.NewJWTIssuer("test-secret", -time.Minute, -time.Minute)

	pair, err := issuer.IssuePair(42)
	assert.NoError(t, err)

	_, err = issuer.VerifyAccess(pair.Access)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestJWTIssuer_RejectsGarbage(t *testing.T) {
	issuer := newIssuer()

	_, err := issuer.VerifyAccess("not-a-jwt")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
