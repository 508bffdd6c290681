package config

import (
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "rental-service", cfg.ServiceName)
	assert.Equal(t, 3, cfg.FeaturedListingsLimit)
	assert.Equal(t, "refund", cfg.BookingCompensationPolicy)
	assert.Equal(t, 10*time.Minute, cfg.ListingCacheTTL)
	assert.False(t, cfg.MinioEnabled())
	assert.False(t, cfg.SMTPEnabled())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LISTING_CACHE_TTL", "30s")
	t.Setenv("BOOKING_COMPENSATION_POLICY", "none")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.ListingCacheTTL)
	assert.Equal(t, "none", cfg.BookingCompensationPolicy)
	assert.True(t, cfg.MinioEnabled())
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadConfig_RejectsUnknownCompensationPolicy(t *testing.T) {
	t.Setenv("BOOKING_COMPENSATION_POLICY", "retry")

	_, err := LoadConfig(logger.NewNop())
	assert.Error(t, err)
}
