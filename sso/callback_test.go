package sso

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackFromRequest(t *testing.T) {
	t.Parallel()
	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		req := httptest.NewRequest("GET", "https://rp.example.com/callback?code=abc&state=st_123", nil)
		cb, err := CallbackFromRequest(req)
		require.NoError(err)
		assert.Equal("abc", cb.QueryParams().Get("code"))
		assert.Equal("st_123", cb.QueryParams().Get("state"))
		assert.Contains(cb.RequestURL(), "/callback")
	})
	t.Run("nil-request", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		_, err := CallbackFromRequest(nil)
		require.ErrorIs(err, ErrNilParameter)
	})
}

func TestCallbackFromURL(t *testing.T) {
	t.Parallel()
	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		cb, err := CallbackFromURL("https://rp.example.com/callback?code=abc&state=st_123&error=access_denied")
		require.NoError(err)
		assert.Equal("abc", cb.QueryParams().Get("code"))
		assert.Equal("st_123", cb.QueryParams().Get("state"))
		assert.Equal("access_denied", cb.QueryParams().Get("error"))
		assert.Equal("https://rp.example.com/callback?code=abc&state=st_123&error=access_denied", cb.RequestURL())
	})
	t.Run("unparsable", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		_, err := CallbackFromURL("https://rp.example.com/%zz")
		require.ErrorIs(err, ErrInvalidParameter)
	})
}
