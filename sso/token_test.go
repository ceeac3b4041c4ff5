package sso

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testSignIDToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return raw
}

func TestNewToken(t *testing.T) {
	t.Parallel()
	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		expiry := time.Now().Add(time.Hour)
		src := (&oauth2.Token{
			AccessToken:  "access-value",
			RefreshToken: "refresh-value",
			TokenType:    "Bearer",
			Expiry:       expiry,
		}).WithExtra(map[string]interface{}{"id_token": "header.payload.sig"})

		tk, err := NewToken(src)
		require.NoError(err)
		assert.Equal(AccessToken("access-value"), tk.Access)
		assert.Equal(RefreshToken("refresh-value"), tk.Refresh)
		assert.Equal(IDToken("header.payload.sig"), tk.ID)
		assert.Equal("Bearer", tk.Type)
		assert.Equal(expiry, tk.Expiry)
		assert.True(tk.Valid())
	})
	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		tk, err := NewToken(nil)
		require.ErrorIs(err, ErrNilParameter)
		require.Nil(tk)
	})
	t.Run("missing-access-token", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		tk, err := NewToken(&oauth2.Token{TokenType: "Bearer"})
		require.ErrorIs(err, ErrInvalidParameter)
		require.Nil(tk)
	})
}

func TestToken_Expired(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	assert.False((&Token{Access: "a"}).Expired(), "no expiry hint never expires")
	assert.True((&Token{Access: "a", Expiry: time.Now().Add(-time.Minute)}).Expired())
	assert.True((&Token{Access: "a", Expiry: time.Now().Add(DefaultTokenExpirySkew / 2)}).Expired(), "inside the skew window counts as expired")
	assert.False((&Token{Access: "a", Expiry: time.Now().Add(time.Hour)}).Expired())
}

func TestToken_Valid(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	var nilToken *Token
	assert.False(nilToken.Valid())
	assert.False((&Token{}).Valid())
	assert.True((&Token{Access: "a"}).Valid())
	assert.False((&Token{Access: "a", Expiry: time.Now().Add(-time.Minute)}).Valid())
}

func TestIDToken_Claims(t *testing.T) {
	t.Parallel()
	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		raw := testSignIDToken(t, jwt.MapClaims{
			"sub":   "subject-1",
			"email": "alice@example.com",
		})
		claims, err := IDToken(raw).Claims()
		require.NoError(err)
		assert.Equal("subject-1", claims["sub"])
		assert.Equal("alice@example.com", claims["email"])
	})
	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		_, err := IDToken("").Claims()
		require.ErrorIs(err, ErrInvalidParameter)
	})
	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		_, err := IDToken("not-a-jwt").Claims()
		require.ErrorIs(err, ErrInvalidParameter)
	})
}

func TestToken_Redaction(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	tk := Token{
		Access:  "super-secret-access",
		Refresh: "super-secret-refresh",
		ID:      "super-secret-id",
	}
	assert.Equal(RedactedAccessToken, tk.Access.String())
	assert.Equal(RedactedRefreshToken, tk.Refresh.String())
	assert.Equal(RedactedIDToken, tk.ID.String())

	marshaled, err := json.Marshal(tk)
	require.NoError(err)
	assert.NotContains(string(marshaled), "super-secret")
	assert.Contains(string(marshaled), RedactedAccessToken)
	assert.Contains(string(marshaled), RedactedRefreshToken)
	assert.Contains(string(marshaled), RedactedIDToken)
}
