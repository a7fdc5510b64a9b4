package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatabaseEngine(t *testing.T) {
	t.Run("Should map every code to its engine", func(t *testing.T) {
		cases := map[string]DatabaseEngine{
			"1": DatabasePostgres,
			"2": DatabaseSQLite,
			"3": DatabaseMySQL,
			"4": DatabaseOracle,
		}
		for code, want := range cases {
			got, err := ParseDatabaseEngine(code)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})
	t.Run("Should reject unknown codes", func(t *testing.T) {
		for _, code := range []string{"", "0", "5", "postgres"} {
			_, err := ParseDatabaseEngine(code)
			assert.Error(t, err, "code %q", code)
		}
	})
}

func TestDatabaseEngine(t *testing.T) {
	t.Run("Should render the backend name written into settings", func(t *testing.T) {
		assert.Equal(t, "postgresql_psycopg2", DatabasePostgres.String())
		assert.Equal(t, "sqlite3", DatabaseSQLite.String())
		assert.Equal(t, "mysql", DatabaseMySQL.String())
		assert.Equal(t, "oracle", DatabaseOracle.String())
	})
	t.Run("Should treat only sqlite as embedded", func(t *testing.T) {
		assert.True(t, DatabaseSQLite.Embedded())
		for _, e := range []DatabaseEngine{DatabasePostgres, DatabaseMySQL, DatabaseOracle} {
			assert.False(t, e.Embedded(), "engine %s", e)
		}
	})
	t.Run("Should hint at the missing driver for postgres and mysql", func(t *testing.T) {
		assert.Equal(t, "pip install psycopg2", DatabasePostgres.DriverHint())
		assert.Equal(t, "pip install mysqlclient", DatabaseMySQL.DriverHint())
		assert.Empty(t, DatabaseSQLite.DriverHint())
		assert.Empty(t, DatabaseOracle.DriverHint())
	})
}

func TestParseCacheEngine(t *testing.T) {
	t.Run("Should map every code to its engine", func(t *testing.T) {
		cases := map[string]CacheEngine{
			"1": CacheMemcached,
			"2": CacheRedis,
			"3": CacheNone,
		}
		for code, want := range cases {
			got, err := ParseCacheEngine(code)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})
	t.Run("Should reject unknown codes", func(t *testing.T) {
		_, err := ParseCacheEngine("4")
		assert.Error(t, err)
	})
}

func TestCacheEngine(t *testing.T) {
	t.Run("Should require nodes only for external caches", func(t *testing.T) {
		assert.True(t, CacheMemcached.RequiresNodes())
		assert.True(t, CacheRedis.RequiresNodes())
		assert.False(t, CacheNone.RequiresNodes())
	})
	t.Run("Should render the django backend path", func(t *testing.T) {
		assert.Contains(t, CacheMemcached.String(), "memcached")
		assert.Contains(t, CacheRedis.String(), "redis")
		assert.Contains(t, CacheNone.String(), "locmem")
	})
}
