package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 6, cfg.Catalog.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, 5, cfg.Leads.RatePerMinute)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.False(t, cfg.IsProduction())
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ENV", EnvProduction)
	v.Set("CATALOG_PAGE_SIZE", 0)
	v.Set("CATALOG_CACHE_TTL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " https://a.test, ,https://b.test ")

	cfg := fromViper(v)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 6, cfg.Catalog.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
}
