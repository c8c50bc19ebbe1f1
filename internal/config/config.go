package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/axo-networks/marketplace-api/internal/secrets"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	// Driver selects the gorm dialector: "postgres" or "sqlite"
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	SQLitePath      string
	AutoMigrate     bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// AuthConfig holds token and password settings
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
	BcryptCost    int
	// ExposeTemporaryPassword controls whether registration echoes the generated password
	ExposeTemporaryPassword bool
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
	EnableMetrics  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	// AllowedOrigins is a list of allowed origins, "*" allows all
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute applies per client IP
	RequestsPerMinute int
	// RequestsPerMinuteAuth applies per authenticated user
	RequestsPerMinuteAuth int
	WhitelistIPs          []string
	WhitelistPaths        []string
}

// MetricsConfig controls the manufacturer metrics recompute queue and sweep job
type MetricsConfig struct {
	Workers      int
	QueueSize    int
	SweepEnabled bool
	SweepCron    string
	SweepTimeout int // seconds
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// TokenTTL returns the bearer token lifetime
func (a *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// SweepTimeoutDuration returns the metrics sweep timeout as duration
func (m *MetricsConfig) SweepTimeoutDuration() time.Duration {
	return time.Duration(m.SweepTimeout) * time.Second
}

// Load loads configuration from file and environment variables.
// Secrets from Key Vault are resolved by LoadWithSecrets.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if secret := v.GetString("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if port := v.GetInt("PORT"); port != 0 {
		cfg.App.Port = port
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves secrets from Azure Key Vault when
// USE_AZURE_KEY_VAULT=true and the environment is staging or production. Otherwise the
// values from Load are returned untouched.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, cfg.validate()
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, cfg.validate()
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	logger.Info("Loading secrets from Azure Key Vault",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	applied, err := provider.Resolve(ctx, secretBindings(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve secrets: %w", err)
	}
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}

	logger.Info("Secrets loaded from vault successfully", zap.Int("applied", applied))
	return cfg, cfg.validate()
}

// secretBindings lists the Key Vault secrets and the env variables that override them
func secretBindings(cfg *Config) []secrets.Binding {
	return []secrets.Binding{
		{SecretName: "POSTGRES-HOST", EnvName: "DATABASE_HOST", Apply: func(v string) { cfg.Database.Host = v }},
		{SecretName: "POSTGRES-USER", EnvName: "DATABASE_USER", Apply: func(v string) { cfg.Database.User = v }},
		{SecretName: "POSTGRES-PASSWORD", EnvName: "DATABASE_PASSWORD", Apply: func(v string) { cfg.Database.Password = v }, Required: true},
		{SecretName: "jwt-secret", EnvName: "JWT_SECRET", Apply: func(v string) { cfg.Auth.JWTSecret = v }, Required: true},
		{SecretName: "storage-connection-string", EnvName: "STORAGE_CLOUDCONNECTIONSTRING", Apply: func(v string) { cfg.Storage.CloudConnectionString = v }},
	}
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret (JWT_SECRET) must be set")
	}
	if c.App.Environment == "production" && c.Auth.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("auth.jwtSecret must be overridden in production")
	}
	return nil
}

const defaultJWTSecret = "axo-development-secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "AXO Marketplace API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 5000)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "axo")
	v.SetDefault("database.user", "axo_user")
	v.SetDefault("database.password", "axo_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.sqlitePath", "axo.db")
	v.SetDefault("database.autoMigrate", false)
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	v.SetDefault("auth.jwtSecret", defaultJWTSecret)
	v.SetDefault("auth.tokenTTLHours", 24)
	v.SetDefault("auth.bcryptCost", 10)
	v.SetDefault("auth.exposeTemporaryPassword", true)

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.cloudContainer", "design-files")
	v.SetDefault("storage.maxUploadSizeMB", 25)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 30)
	v.SetDefault("server.enableSwagger", true)
	v.SetDefault("server.enableMetrics", true)

	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/api/_health", "/metrics"})

	v.SetDefault("metrics.workers", 2)
	v.SetDefault("metrics.queueSize", 256)
	v.SetDefault("metrics.sweepEnabled", true)
	v.SetDefault("metrics.sweepCron", "0 */15 * * * *")
	v.SetDefault("metrics.sweepTimeout", 120)
}
