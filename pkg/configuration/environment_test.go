package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_SkipsMissingFiles(t *testing.T) {
	tmp := t.TempDir()

	envPath := filepath.Join(tmp, ".env.test")
	require.NoError(t, os.WriteFile(envPath, []byte("STOCKTAKE_TEST_ENV_LOAD=ok\n"), 0o644))

	_ = os.Unsetenv("STOCKTAKE_TEST_ENV_LOAD")
	t.Cleanup(func() { _ = os.Unsetenv("STOCKTAKE_TEST_ENV_LOAD") })

	n, err := LoadEnv([]string{filepath.Join(tmp, "does-not-exist.env"), envPath})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("STOCKTAKE_TEST_ENV_LOAD"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	n, err := LoadEnv([]string{filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestValidateRLS(t *testing.T) {
	t.Run("defaults to disabled", func(t *testing.T) {
		c := &Configuration{}
		require.NoError(t, c.validateRLS())
		require.Equal(t, "disabled", c.RLSEnforce)
	})

	t.Run("normalizes case", func(t *testing.T) {
		c := &Configuration{RLSEnforce: " Enforce ", Database: DatabaseOptions{User: "app"}}
		require.NoError(t, c.validateRLS())
		require.Equal(t, "enforce", c.RLSEnforce)
	})

	t.Run("rejects unknown modes", func(t *testing.T) {
		c := &Configuration{RLSEnforce: "maybe"}
		require.Error(t, c.validateRLS())
	})

	t.Run("enforce refuses superuser", func(t *testing.T) {
		c := &Configuration{RLSEnforce: "enforce", Database: DatabaseOptions{User: "postgres"}}
		require.Error(t, c.validateRLS())
	})
}

func TestLogrusLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"silent": logrus.PanicLevel,
		"error":  logrus.ErrorLevel,
		"warn":   logrus.WarnLevel,
		"info":   logrus.InfoLevel,
		"debug":  logrus.DebugLevel,
		"bogus":  logrus.ErrorLevel,
		"":       logrus.ErrorLevel,
	}
	for in, want := range cases {
		c := &Configuration{LogLevel: in}
		require.Equal(t, want, c.LogrusLogLevel(), "level %q", in)
	}
}

func TestDatabaseConnectionString(t *testing.T) {
	d := &DatabaseOptions{
		Name: "stocktake", Host: "db", Port: "5433", User: "app", Password: "secret",
	}
	require.Equal(
		t,
		"host=db port=5433 user=app dbname=stocktake password=secret sslmode=disable",
		d.ConnectionString(),
	)
}
