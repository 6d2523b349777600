package mdscore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydatashare/mdscore"
	"github.com/mydatashare/mdscore/pkg/logger"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("MDS_API_BASE_URL", "https://api.example.com")
	t.Setenv("MDS_HTTP_TIMEOUT", "5s")
	t.Setenv("MDS_AUTH_ITEM_BACKGROUND_FETCH_OID_CONFIG", "false")
	t.Setenv("REDIS_URL", "")
	t.Setenv("MDS_LOG_FORMAT", "json")

	e, err := mdscore.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", e.APIBaseURL)
	assert.Equal(t, "v3.0", e.APIVersion)
	assert.Equal(t, 5*time.Second, e.HTTPTimeout)
	assert.False(t, e.AuthItem.BackgroundFetchOIDConfig)
	assert.False(t, e.Redis.Enabled())
	assert.Equal(t, time.Hour, e.Redis.KeyTTL)
	assert.Equal(t, logger.FormatJSON, e.LogFormat)

	client, err := mdscore.FromEnv(t.Context(), e)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/public/v3.0/auth_items", client.Config().Endpoint("auth_items"))
	assert.NoError(t, client.Close())
}

func TestLoadEnv_InvalidLogFormat(t *testing.T) {
	t.Setenv("MDS_LOG_FORMAT", "xml")

	_, err := mdscore.LoadEnv()
	assert.ErrorIs(t, err, mdscore.ErrInvalidConfig)
}

func TestFromEnv_InvalidConfig(t *testing.T) {
	t.Setenv("MDS_API_BASE_URL", "not a url")

	e, err := mdscore.LoadEnv()
	require.NoError(t, err)

	_, err = mdscore.FromEnv(t.Context(), e)
	assert.ErrorIs(t, err, mdscore.ErrInvalidConfig)
}
