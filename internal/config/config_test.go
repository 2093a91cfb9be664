package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/roadbook/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) {
	t.Helper()
	t.Setenv("ROADBOOK_HOME_LAT", "50.4501")
	t.Setenv("ROADBOOK_HOME_LNG", "30.5234")
}

func Test_MustLoadFromEnv(t *testing.T) {
	setHome(t)
	t.Setenv("ROADBOOK_ENV", "local")
	t.Setenv("ROADBOOK_PROVIDER_TYPE", "mapbox")
	t.Setenv("ROADBOOK_PROVIDER_KEY", "testAPIKey")
	t.Setenv("ROADBOOK_PROVIDER_TIMEOUT", "3s")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.InDelta(t, 50.4501, cfg.Home.Latitude, 1e-9)
	assert.InDelta(t, 30.5234, cfg.Home.Longitude, 1e-9)
	assert.Equal(t, "mapbox", cfg.Provider.Type)
	assert.Equal(t, "testAPIKey", cfg.Provider.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, 12345, cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func Test_MustLoadDefaults(t *testing.T) {
	setHome(t)

	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.HealthPort)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, "osrm", cfg.Provider.Type)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 1, cfg.Provider.RateLimit)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 50, cfg.Map.Padding)
	assert.InDelta(t, 14.0, cfg.Map.MaxZoom, 1e-9)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Empty(t, cfg.Redis.Addr)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", "ROADBOOK_HOME_LAT=41.9\nROADBOOK_HOME_LNG=12.5\nROADBOOK_WORKERS=7\n")
	t.Setenv("ROADBOOK_ENV_FILE", file.Name())
	t.Cleanup(func() {
		for _, key := range []string{"ROADBOOK_HOME_LAT", "ROADBOOK_HOME_LNG", "ROADBOOK_WORKERS"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg := config.MustLoad()

	assert.InDelta(t, 41.9, cfg.Home.Latitude, 1e-9)
	assert.InDelta(t, 12.5, cfg.Home.Longitude, 1e-9)
	assert.Equal(t, 7, cfg.Workers)
}

func TestMustLoad_EnvFileMissing(t *testing.T) {
	t.Setenv("ROADBOOK_ENV_FILE", "/nonexistent/roadbook.env")

	require.PanicsWithValue(t, "failed to load env file /nonexistent/roadbook.env", func() {
		config.MustLoad()
	})
}

func TestMustLoad_HomeRequired(t *testing.T) {
	t.Setenv("ROADBOOK_HOME_LAT", "")
	t.Setenv("ROADBOOK_HOME_LNG", "")

	assert.PanicsWithValue(t, "ROADBOOK_HOME_LAT and ROADBOOK_HOME_LNG are required", func() {
		config.MustLoad()
	})
}

func TestMustLoad_HomeError(t *testing.T) {
	t.Setenv("ROADBOOK_HOME_LAT", "north")
	t.Setenv("ROADBOOK_HOME_LNG", "30.5")

	assert.PanicsWithValue(t, "failed to parse home latitude from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_HomeOutOfRange(t *testing.T) {
	t.Setenv("ROADBOOK_HOME_LAT", "91")
	t.Setenv("ROADBOOK_HOME_LNG", "30.5")

	assert.PanicsWithValue(t, "home coordinates are out of range", func() {
		config.MustLoad()
	})
}

func TestMustLoad_TimeoutError(t *testing.T) {
	setHome(t)
	t.Setenv("ROADBOOK_PROVIDER_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse provider timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PortError(t *testing.T) {
	setHome(t)
	t.Setenv("ROADBOOK_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersError(t *testing.T) {
	setHome(t)
	t.Setenv("ROADBOOK_WORKERS", "error_value")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be an integer types", func() {
		config.MustLoad()
	})
}
