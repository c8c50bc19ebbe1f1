package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Source says where secrets come from
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceVault       Source = "vault"
	// SourceAuto picks the environment for local runs and the vault for deployed ones
	SourceAuto Source = "auto"
)

type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// ProviderConfig holds configuration for the secrets provider
type ProviderConfig struct {
	Source       Source
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Provider resolves named secrets, letting an explicit environment variable win over the vault
type Provider struct {
	source Source
	vault  secretGetter
	logger *zap.Logger
}

func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	p := &Provider{
		source: ResolveSource(cfg.Source, cfg.Environment),
		logger: logger,
	}

	if p.source == SourceVault {
		vault, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.vault = vault
	}

	logger.Info("Secrets provider initialized",
		zap.String("source", string(p.source)),
		zap.String("environment", cfg.Environment),
	)
	return p, nil
}

// ResolveSource turns SourceAuto (or an empty source) into a concrete one
func ResolveSource(source Source, environment string) Source {
	if source != SourceAuto && source != "" {
		return source
	}
	switch environment {
	case "development", "local", "test", "":
		return SourceEnvironment
	default:
		return SourceVault
	}
}

// Lookup returns the value of envName when set, otherwise the vault secret.
// With the environment source only envName is consulted.
func (p *Provider) Lookup(ctx context.Context, secretName, envName string) (string, error) {
	if value := os.Getenv(envName); value != "" {
		p.logger.Debug("secret taken from environment", zap.String("env_name", envName))
		return value, nil
	}
	if p.source != SourceVault || p.vault == nil {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, envName)
	}
	return p.vault.GetSecret(ctx, secretName)
}

// Binding maps one secret onto a config field
type Binding struct {
	SecretName string
	EnvName    string
	Apply      func(value string)
	// Required bindings fail Resolve when no value is found
	Required bool
}

// Resolve applies every binding that has a value. Optional bindings without a value are
// skipped; a missing required binding or any vault failure other than not-found aborts.
func (p *Provider) Resolve(ctx context.Context, bindings []Binding) (int, error) {
	applied := 0
	for _, b := range bindings {
		value, err := p.Lookup(ctx, b.SecretName, b.EnvName)
		switch {
		case err == nil && value != "":
			b.Apply(value)
			applied++
		case err == nil, errors.Is(err, ErrSecretNotFound):
			if b.Required {
				return applied, fmt.Errorf("required secret %s (env %s) is not set", b.SecretName, b.EnvName)
			}
			p.logger.Debug("optional secret not set", zap.String("secret_name", b.SecretName))
		default:
			return applied, err
		}
	}
	return applied, nil
}

// IsVaultEnabled returns true if secrets are loaded from vault
func (p *Provider) IsVaultEnabled() bool {
	return p.source == SourceVault
}
