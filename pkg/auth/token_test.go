package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123"

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(testSecret, time.Hour)

	tok, err := issuer.Issue("ann@example.com", "507f1f77bcf86cd799439011")
	require.NoError(t, err)

	claims, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
}

func TestIssue_ZeroTTLHasNoExpiry(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(testSecret, 0)
	tok, err := issuer.Issue("ann@example.com", "u1")
	require.NoError(t, err)

	claims, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestIssue_RequiresUserID(t *testing.T) {
	t.Parallel()

	_, err := NewTokenIssuer(testSecret, time.Hour).Issue("ann@example.com", "")
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(testSecret, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := issuer.Issue("ann@example.com", "u1")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Rejects(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(testSecret, time.Hour)
	valid, err := issuer.Issue("ann@example.com", "u1")
	require.NoError(t, err)

	otherKey, err := NewTokenIssuer("another-secret-that-is-long", time.Hour).Issue("ann@example.com", "u1")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"})
	unsigned, err := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u1"})
	wrongAlg, err := hs512.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "ann@example.com"})
	missingID, err := noUser.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.jwt"},
		{"wrong secret", otherKey},
		{"tampered payload", tampered},
		{"alg none", unsigned},
		{"other hmac alg", wrongAlg},
		{"missing user id", missingID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, ComparePassword(hash, "hunter2"))
	assert.ErrorIs(t, ComparePassword(hash, "hunter3"), ErrPasswordMismatch)
	assert.Error(t, ComparePassword("not-a-hash", "hunter2"))
}

func TestClaimsContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Nil(t, ClaimsFrom(ctx))
	assert.Equal(t, "", UserIDFrom(ctx))

	ctx = WithClaims(ctx, &Claims{UserID: "u1"})
	assert.Equal(t, "u1", UserIDFrom(ctx))
}
