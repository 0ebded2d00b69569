package config

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_PUBLIC_KEY", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 90, cfg.Reporting.MaxRangeDays)
	assert.Equal(t, "BRL", cfg.Reporting.DefaultCurrency)
	assert.Equal(t, 1024, cfg.Cache.Size)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowOrigins)

	// development mints its own signer
	assert.NotNil(t, cfg.JWT.PrivateKey)
	assert.NotNil(t, cfg.JWT.PublicKey)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("JWT_PUBLIC_KEY", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REPORT_MAX_RANGE_DAYS", "31")
	t.Setenv("RESPONSE_CACHE_TTL", "30s")
	t.Setenv("SEED_DATABASE", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsTesting())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 31, cfg.Reporting.MaxRangeDays)
	assert.Equal(t, 31*24*time.Hour, cfg.Reporting.MaxRange())
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowOrigins)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY", "")
	t.Setenv("RATE_LIMIT_PER_SECOND", "fast")
	t.Setenv("DB_CONN_MAX_LIFETIME", "forever")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Security.RateLimitPerSecond)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY", "")
	t.Setenv("REPORT_MAX_RANGE_DAYS", "0")
	t.Setenv("RESPONSE_CACHE_SIZE", "-1")

	cfg, err := Load()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "REPORT_MAX_RANGE_DAYS")
	assert.Contains(t, err.Error(), "RESPONSE_CACHE_SIZE")
}

func TestLoad_ProductionWithoutKeyFails(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_PUBLIC_KEY", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_PUBLIC_KEY")
}

func TestValidate_ProductionNeedsIssuer(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Environment: "production"},
		Reporting: ReportingConfig{MaxRangeDays: 90},
		Cache:     CacheConfig{Size: 10},
		Security:  SecurityConfig{RateLimitPerSecond: 1, RateLimitBurst: 1},
	}
	assert.ErrorContains(t, cfg.Validate(), "JWT_ISSUER")

	cfg.JWT.Issuer = "https://id.example"
	assert.NoError(t, cfg.Validate())
}

func TestLoadJWTKeys_PublicKeyFromEnv(t *testing.T) {
	_, publicKey, err := GenerateRSAKeyPair()
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(publicKey)
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
	t.Setenv("JWT_PUBLIC_KEY", encoded)

	cfg := &Config{Server: ServerConfig{Environment: "production"}}
	private, public, err := cfg.loadJWTKeys()

	require.NoError(t, err)
	assert.Nil(t, private, "verification-only deployments carry no signer")
	assert.True(t, publicKey.Equal(public))
}

func TestLoadJWTKeys_ProductionRequiresKey(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY", "")

	cfg := &Config{Server: ServerConfig{Environment: "production"}}
	_, _, err := cfg.loadJWTKeys()

	assert.Error(t, err)
}

func TestLoadJWTKeys_RejectsGarbage(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY", "not-base64!")

	cfg := &Config{}
	_, _, err := cfg.loadJWTKeys()

	assert.Error(t, err)
}

func TestDatabaseConfig_ConnectionStrings(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "ledger", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ledger sslmode=disable", db.DSN())
	assert.Equal(t, "postgres://u:p@db:5432/ledger?sslmode=disable", db.URL())
}
