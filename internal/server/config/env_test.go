package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("FOCUSKEEPER_DATABASE_DSN", "postgres://env")
	t.Setenv("FOCUSKEEPER_TOKEN_TTL", "2h")
	t.Setenv("FOCUSKEEPER_PASSWORD_HASH_COST", "12")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, 2*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, 12, c.PasswordHashCost)
	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "secretKey", c.SecretKey)
}

func TestParseEnv_InvalidValuePanics(t *testing.T) {
	t.Setenv("FOCUSKEEPER_PASSWORD_HASH_COST", "many")

	var c Config
	assert.Panics(t, func() { parseEnv(&c) })
}
