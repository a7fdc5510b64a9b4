package config

import "fmt"

// DatabaseEngine is the closed set of supported database backends. The
// CLI selects one with the numeric codes "1".."4"; the zero value means
// no engine has been selected yet.
type DatabaseEngine int

const (
	DatabasePostgres DatabaseEngine = iota + 1
	DatabaseSQLite
	DatabaseMySQL
	DatabaseOracle
)

// DatabaseEngineCodes are the accepted selection codes, in prompt order.
func DatabaseEngineCodes() []string {
	return []string{"1", "2", "3", "4"}
}

// ParseDatabaseEngine maps a selection code to an engine.
func ParseDatabaseEngine(code string) (DatabaseEngine, error) {
	switch code {
	case "1":
		return DatabasePostgres, nil
	case "2":
		return DatabaseSQLite, nil
	case "3":
		return DatabaseMySQL, nil
	case "4":
		return DatabaseOracle, nil
	default:
		return 0, fmt.Errorf("unknown database engine code %q (valid: 1 - postgresql, 2 - sqlite, 3 - mysql, 4 - oracle)", code)
	}
}

// String returns the backend name written into the settings file.
func (e DatabaseEngine) String() string {
	switch e {
	case DatabasePostgres:
		return "postgresql_psycopg2"
	case DatabaseSQLite:
		return "sqlite3"
	case DatabaseMySQL:
		return "mysql"
	case DatabaseOracle:
		return "oracle"
	default:
		return "unknown"
	}
}

// Embedded reports whether the engine stores its data in a plain file and
// therefore needs no network credentials.
func (e DatabaseEngine) Embedded() bool {
	return e == DatabaseSQLite
}

// DriverHint names the database driver the operator still has to install,
// or "" when none is needed.
func (e DatabaseEngine) DriverHint() string {
	switch e {
	case DatabasePostgres:
		return "pip install psycopg2"
	case DatabaseMySQL:
		return "pip install mysqlclient"
	default:
		return ""
	}
}

// CacheEngine is the closed set of supported cache backends.
type CacheEngine int

const (
	CacheMemcached CacheEngine = iota + 1
	CacheRedis
	CacheNone
)

// CacheEngineCodes are the accepted selection codes, in prompt order.
func CacheEngineCodes() []string {
	return []string{"1", "2", "3"}
}

// ParseCacheEngine maps a selection code to an engine.
func ParseCacheEngine(code string) (CacheEngine, error) {
	switch code {
	case "1":
		return CacheMemcached, nil
	case "2":
		return CacheRedis, nil
	case "3":
		return CacheNone, nil
	default:
		return 0, fmt.Errorf("unknown cache engine code %q (valid: 1 - memcached, 2 - redis, 3 - none)", code)
	}
}

// String returns the backend name written into the settings file.
func (e CacheEngine) String() string {
	switch e {
	case CacheMemcached:
		return "django.core.cache.backends.memcached.MemcachedCache"
	case CacheRedis:
		return "django_redis.cache.RedisCache"
	case CacheNone:
		return "django.core.cache.backends.locmem.LocMemCache"
	default:
		return "unknown"
	}
}

// RequiresNodes reports whether the engine needs at least one cache node.
func (e CacheEngine) RequiresNodes() bool {
	return e == CacheMemcached || e == CacheRedis
}
