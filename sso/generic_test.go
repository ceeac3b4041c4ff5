package sso

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResponseConverter(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	identity, err := DefaultResponseConverter(context.Background(), map[string]interface{}{
		"sub":         "subject-1",
		"email":       "alice@example.com",
		"given_name":  "Alice",
		"family_name": "Example",
		"name":        "Alice Example",
		"picture":     "https://example.com/alice.png",
		"locale":      "en",
	}, nil)
	require.NoError(err)
	assert.Equal(&Identity{
		ID:          "subject-1",
		Email:       "alice@example.com",
		FirstName:   "Alice",
		LastName:    "Example",
		DisplayName: "Alice Example",
		Picture:     "https://example.com/alice.png",
	}, identity)

	// unknown or oddly typed claims are just skipped
	identity, err = DefaultResponseConverter(context.Background(), map[string]interface{}{"sub": 42}, nil)
	require.NoError(err)
	assert.Empty(identity.ID)
}

func TestNewProviderDescriptor(t *testing.T) {
	t.Parallel()
	doc := DiscoveryDocument{
		AuthorizationEndpoint: "https://acme.example.com/authorize",
		TokenEndpoint:         "https://acme.example.com/token",
		UserInfoEndpoint:      "https://acme.example.com/userinfo",
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		d, err := NewProviderDescriptor("acme", doc, nil,
			WithScopes("openid", "email"),
			WithPKCE(true),
			WithChallengeMethod(Plain),
		)
		require.NoError(err)
		assert.Equal("acme", d.Provider)
		assert.Equal(doc.AuthorizationEndpoint, d.AuthorizationEndpoint)
		assert.Equal(doc.TokenEndpoint, d.TokenEndpoint)
		assert.Equal(doc.UserInfoEndpoint, d.UserInfoEndpoint)
		assert.Equal([]string{"openid", "email"}, d.Scopes)
		assert.True(d.UsesPKCE)
		assert.Equal(Plain, d.ChallengeMethod)
		assert.False(d.UsesDiscovery())
		require.NotNil(d.Convert, "nil converter falls back to the default")
	})
	t.Run("empty-name", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		_, err := NewProviderDescriptor("", doc, nil)
		require.ErrorIs(err, ErrInvalidParameter)
	})
	t.Run("incomplete-document", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		_, err := NewProviderDescriptor("acme", DiscoveryDocument{TokenEndpoint: doc.TokenEndpoint}, nil)
		require.ErrorIs(err, ErrInvalidParameter)
	})
	t.Run("bad-challenge-method", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		_, err := NewProviderDescriptor("acme", doc, nil, WithPKCE(true), WithChallengeMethod("S512"))
		require.ErrorIs(err, ErrInvalidParameter)
	})
}

func TestNewProviderDescriptorFromURL(t *testing.T) {
	t.Parallel()
	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		d, err := NewProviderDescriptorFromURL("acme", "https://acme.example.com/.well-known/openid-configuration", nil)
		require.NoError(err)
		assert.True(d.UsesDiscovery())
		require.NotNil(d.Convert)
	})
	t.Run("empty-url", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		_, err := NewProviderDescriptorFromURL("acme", "", nil)
		require.ErrorIs(err, ErrInvalidParameter)
	})
}
