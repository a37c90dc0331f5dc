package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.DBAutoMigrate)
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "   ")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_RejectsNonHMACAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ALGORITHM", "RS256")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_ALGORITHM")
}

func TestLoad_LegacyExpireMinutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.AccessTokenTTL)
}

func TestLoad_AccessTokenTTLWins(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "2h")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenTTL)
}

func TestValidate_BcryptCostBounds(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BCRYPT_COST", "2")

	_, err := Load()
	assert.ErrorContains(t, err, "BCRYPT_COST")
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV("  "))
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a, ,b "))
}

func TestDatabaseURL_WithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/jobs")

	assert.Equal(t, "postgres://u:p@db:5432/jobs", DatabaseURL())
}

func TestLoad_CookieSecure(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_LegacySecretKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_SECRET_KEY", "legacy-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-secret", cfg.JWTSecret)
}

func TestLoad_TrustProxyHeaders(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TrustProxyHeaders)
}
