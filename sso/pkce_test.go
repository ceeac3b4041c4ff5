package sso

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeVerifier(t *testing.T) {
	t.Parallel()
	t.Run("basics", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		v, err := NewCodeVerifier()
		require.NoError(err)
		require.NotNil(v)

		assert.Equal(S256, v.Method())
		assert.Len(v.Verifier(), verifierLen)
		assert.NotEmpty(v.Challenge())
		assert.NotEqual(v.Verifier(), v.Challenge())

		sum := sha256.Sum256([]byte(v.Verifier()))
		assert.Equal(base64.RawURLEncoding.EncodeToString(sum[:]), v.Challenge())
	})
	t.Run("unique-per-call", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		first, err := NewCodeVerifier()
		require.NoError(err)
		second, err := NewCodeVerifier()
		require.NoError(err)
		require.NotEqual(first.Verifier(), second.Verifier())
	})
	t.Run("with-plain-method", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		v, err := NewCodeVerifier(WithChallengeMethod(Plain))
		require.NoError(err)
		assert.Equal(Plain, v.Method())
		assert.Equal(v.Verifier(), v.Challenge())
	})
	t.Run("unsupported-method", func(t *testing.T) {
		t.Parallel()
		assert, require := assert.New(t), require.New(t)
		v, err := NewCodeVerifier(WithChallengeMethod("S512"))
		require.Error(err)
		assert.Nil(v)
		assert.ErrorIs(err, ErrUnsupportedChallengeMethod)
	})
}

func TestCreateCodeChallenge(t *testing.T) {
	t.Parallel()
	v, err := NewCodeVerifier()
	require.NoError(t, err)

	tests := []struct {
		name            string
		m               ChallengeMethod
		v               *CodeVerifier
		wantChallenge   string
		wantErr         error
		wantErrContains string
	}{
		{
			name: "valid-S256",
			m:    S256,
			v:    v,
			wantChallenge: func() string {
				sum := sha256.Sum256([]byte(v.Verifier()))
				return base64.RawURLEncoding.EncodeToString(sum[:])
			}(),
		},
		{
			name:          "valid-plain",
			m:             Plain,
			v:             v,
			wantChallenge: v.Verifier(),
		},
		{
			name:            "invalid-method",
			m:               "S512",
			v:               v,
			wantErr:         ErrUnsupportedChallengeMethod,
			wantErrContains: "S512",
		},
		{
			name:    "nil-verifier",
			m:       S256,
			v:       nil,
			wantErr: ErrNilParameter,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert, require := assert.New(t), require.New(t)
			got, err := CreateCodeChallenge(tt.m, tt.v)
			if tt.wantErr != nil {
				require.Error(err)
				assert.ErrorIs(err, tt.wantErr)
				if tt.wantErrContains != "" {
					assert.Contains(err.Error(), tt.wantErrContains)
				}
				return
			}
			require.NoError(err)
			assert.Equal(tt.wantChallenge, got)
		})
	}
}
