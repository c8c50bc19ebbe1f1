package secrets

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVault map[string]string

func (f fakeVault) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
}

type brokenVault struct{}

func (brokenVault) GetSecret(context.Context, string) (string, error) {
	return "", errors.New("403 forbidden")
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		source Source
		env    string
		want   Source
	}{
		{SourceAuto, "development", SourceEnvironment},
		{SourceAuto, "", SourceEnvironment},
		{SourceAuto, "staging", SourceVault},
		{SourceAuto, "production", SourceVault},
		{"", "production", SourceVault},
		{SourceEnvironment, "production", SourceEnvironment},
		{SourceVault, "development", SourceVault},
	}

	for _, tt := range tests {
		t.Run(string(tt.source)+"/"+tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSource(tt.source, tt.env))
		})
	}
}

func TestProvider_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("environment source", func(t *testing.T) {
		p, err := NewProvider(&ProviderConfig{Source: SourceEnvironment}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, p.IsVaultEnabled())

		t.Setenv("AXO_TEST_SECRET", "s3cret")
		v, err := p.Lookup(ctx, "axo-test-secret", "AXO_TEST_SECRET")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", v)

		_, err = p.Lookup(ctx, "axo-test-missing", "AXO_TEST_MISSING")
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})

	t.Run("environment wins over vault", func(t *testing.T) {
		p := &Provider{source: SourceVault, vault: fakeVault{"jwt-secret": "from-vault"}, logger: zap.NewNop()}

		v, err := p.Lookup(ctx, "jwt-secret", "AXO_TEST_JWT")
		require.NoError(t, err)
		assert.Equal(t, "from-vault", v)

		t.Setenv("AXO_TEST_JWT", "from-env")
		v, err = p.Lookup(ctx, "jwt-secret", "AXO_TEST_JWT")
		require.NoError(t, err)
		assert.Equal(t, "from-env", v)
	})
}

func TestProvider_Resolve(t *testing.T) {
	ctx := context.Background()
	p := &Provider{
		source: SourceVault,
		vault:  fakeVault{"jwt-secret": "signing-key", "POSTGRES-PASSWORD": "pg"},
		logger: zap.NewNop(),
	}

	var jwt, password, storage string
	applied, err := p.Resolve(ctx, []Binding{
		{SecretName: "jwt-secret", EnvName: "AXO_TEST_JWT_UNSET", Apply: func(v string) { jwt = v }, Required: true},
		{SecretName: "POSTGRES-PASSWORD", EnvName: "AXO_TEST_PG_UNSET", Apply: func(v string) { password = v }},
		{SecretName: "storage-connection-string", EnvName: "AXO_TEST_STORAGE_UNSET", Apply: func(v string) { storage = v }},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, "signing-key", jwt)
	assert.Equal(t, "pg", password)
	assert.Empty(t, storage)

	t.Run("missing required secret", func(t *testing.T) {
		_, err := p.Resolve(ctx, []Binding{
			{SecretName: "nope", EnvName: "AXO_TEST_NOPE_UNSET", Apply: func(string) {}, Required: true},
		})
		assert.Error(t, err)
	})

	t.Run("vault failure aborts", func(t *testing.T) {
		broken := &Provider{source: SourceVault, vault: brokenVault{}, logger: zap.NewNop()}
		_, err := broken.Resolve(ctx, []Binding{
			{SecretName: "jwt-secret", EnvName: "AXO_TEST_JWT_UNSET", Apply: func(string) {}},
		})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrSecretNotFound)
	})
}

func TestTTLCache(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newTTLCache(time.Minute, func() time.Time { return now })

	c.put("jwt-secret", "v1")
	v, ok := c.get("jwt-secret")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	now = now.Add(time.Minute)
	_, ok = c.get("jwt-secret")
	assert.False(t, ok, "entries expire after the ttl")

	var disabled *ttlCache
	disabled.put("x", "y")
	_, ok = disabled.get("x")
	assert.False(t, ok)
}

func TestNewProvider_VaultRequiresName(t *testing.T) {
	_, err := NewProvider(&ProviderConfig{Source: SourceVault}, zap.NewNop())
	assert.Error(t, err)
}
