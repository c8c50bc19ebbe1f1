package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

// ErrSecretNotFound is returned when neither the vault nor the environment holds the secret
var ErrSecretNotFound = errors.New("secret not found")

const defaultCacheTTL = 5 * time.Minute

// VaultConfig holds configuration for the vault client
type VaultConfig struct {
	VaultName    string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// VaultClient reads the latest version of Key Vault secrets
type VaultClient struct {
	client *azsecrets.Client
	cache  *ttlCache
	logger *zap.Logger
}

// NewVaultClient authenticates with DefaultAzureCredential, which covers
// managed identity in Container Apps and `az login` on a workstation.
func NewVaultClient(cfg *VaultConfig, logger *zap.Logger) (*VaultClient, error) {
	if cfg.VaultName == "" {
		return nil, fmt.Errorf("vault name is required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", cfg.VaultName)
	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	var cache *ttlCache
	if cfg.CacheEnabled {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		cache = newTTLCache(ttl, time.Now)
	}

	logger.Info("Key Vault client ready",
		zap.String("vault_url", vaultURL),
		zap.Bool("cache", cache != nil),
	)

	return &VaultClient{client: client, cache: cache, logger: logger}, nil
}

// GetSecret returns the secret value. A secret missing from the vault maps to ErrSecretNotFound.
func (v *VaultClient) GetSecret(ctx context.Context, name string) (string, error) {
	if value, ok := v.cache.get(name); ok {
		return value, nil
	}

	resp, err := v.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
		}
		v.logger.Error("Key Vault lookup failed", zap.String("secret_name", name), zap.Error(err))
		return "", fmt.Errorf("failed to get secret %q: %w", name, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("%w: %s has no value", ErrSecretNotFound, name)
	}

	v.cache.put(name, *resp.Value)
	return *resp.Value, nil
}

// ttlCache is a nil-safe expiring map; a nil cache never hits
type ttlCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

func newTTLCache(ttl time.Duration, now func() time.Time) *ttlCache {
	return &ttlCache{ttl: ttl, now: now, entries: make(map[string]cacheEntry)}
}

func (c *ttlCache) get(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[name]
	if !ok {
		return "", false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, name)
		return "", false
	}
	return e.value, true
}

func (c *ttlCache) put(name, value string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries[name] = cacheEntry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
