package sso

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyOpts(t *testing.T) {
	t.Parallel()
	t.Run("applies-in-order", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)
		opts := redirectDefaults()
		ApplyOpts(&opts, WithState("first"), WithState("second"))
		assert.Equal("second", opts.withState)
	})
	t.Run("ignores-wrong-target", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)
		opts := pkceDefaults()
		// a redirect-only option on pkce options is a no-op
		ApplyOpts(&opts, WithState("nope"))
		assert.Equal(pkceDefaults(), opts)
	})
	t.Run("shared-option-hits-every-target", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		eOpts := engineDefaults()
		ApplyOpts(&eOpts, WithScopes("openid"))
		assert.Equal([]string{"openid"}, eOpts.withScopes)

		rOpts := redirectDefaults()
		ApplyOpts(&rOpts, WithScopes("openid"))
		assert.Equal([]string{"openid"}, rOpts.withScopes)

		dOpts := descriptorDefaults()
		ApplyOpts(&dOpts, WithScopes("openid"))
		assert.Equal([]string{"openid"}, dOpts.withScopes)
	})
}

func Test_getEngineOpts(t *testing.T) {
	t.Parallel()
	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)
		opts := getEngineOpts()
		assert.Equal(engineDefaults(), opts)
	})
	t.Run("overrides", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)
		opts := getEngineOpts(
			WithScopes("openid", "email"),
			WithProviderCA("pem"),
			WithInsecureAllowHTTP(true),
		)
		assert.Equal([]string{"openid", "email"}, opts.withScopes)
		assert.Equal("pem", opts.withProviderCA)
		assert.True(opts.withInsecureAllowHTTP)
	})
}

func TestClientSecret_Redaction(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	secret := ClientSecret("super-secret")
	assert.Equal(RedactedClientSecret, secret.String())
	marshaled, err := secret.MarshalJSON()
	assert.NoError(err)
	assert.NotContains(string(marshaled), "super-secret")
}
