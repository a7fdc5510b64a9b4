package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteContext() map[string]any {
	return map[string]any{
		"site_dir":               "/srv/forum",
		"app_name":               "forum_app",
		"database_engine":        "sqlite3",
		"database_name":          "forum.db",
		"staticfiles_app":        "'django.contrib.staticfiles',",
		"auth_context_processor": "django.contrib.auth.context_processors.auth",
		"logfile_name":           "forum.log",
		"secret_key":             "abc123",
	}
}

func TestRender(t *testing.T) {
	t.Run("Should render settings for an embedded database without credentials", func(t *testing.T) {
		out, err := Render(SettingsFile, sqliteContext())
		require.NoError(t, err)

		assert.Contains(t, out, "'ENGINE': 'django.db.backends.sqlite3'")
		assert.Contains(t, out, "'NAME': 'forum.db'")
		assert.NotContains(t, out, "'USER'")
		assert.Contains(t, out, "locmem.LocMemCache", "no cache engine falls back to local memory")
		assert.Contains(t, out, "SECRET_KEY = 'abc123'")
	})

	t.Run("Should render credentials and cache nodes when configured", func(t *testing.T) {
		context := sqliteContext()
		context["database_engine"] = "postgresql_psycopg2"
		context["database_user"] = "forum"
		context["database_password"] = "sekrit"
		context["database_host"] = ""
		context["database_port"] = ""
		context["cache_engine"] = "django.core.cache.backends.memcached.MemcachedCache"
		context["cache_nodes"] = []string{"localhost:11211", "cache2:11211"}
		out, err := Render(SettingsFile, context)
		require.NoError(t, err)

		assert.Contains(t, out, "'USER': 'forum'")
		assert.Contains(t, out, "'PASSWORD': 'sekrit'")
		assert.Contains(t, out, "memcached.MemcachedCache")
		assert.Contains(t, out, "'localhost:11211', 'cache2:11211',")
		assert.NotContains(t, out, "locmem")
	})

	t.Run("Should render the redis options block", func(t *testing.T) {
		context := sqliteContext()
		context["cache_engine"] = "django_redis.cache.RedisCache"
		context["cache_nodes"] = []string{"localhost:6379"}
		context["cache_db"] = "1"
		context["cache_password"] = "cachepw"
		out, err := Render(SettingsFile, context)
		require.NoError(t, err)

		assert.Contains(t, out, "'DB': 1")
		assert.Contains(t, out, "'PASSWORD': 'cachepw'")
	})

	t.Run("Should fail on a missing context key", func(t *testing.T) {
		context := sqliteContext()
		delete(context, "secret_key")
		_, err := Render(SettingsFile, context)
		assert.Error(t, err)
	})

	t.Run("Should render the container templates from site and app names", func(t *testing.T) {
		context := map[string]any{"site_dir": "/srv/forum", "app_name": "forum_app"}
		for _, name := range []string{"crontab", "uwsgi.ini"} {
			out, err := Render(name, context)
			require.NoError(t, err, "template %s", name)
			assert.Contains(t, out, "/srv/forum")
		}
	})

	t.Run("Should refuse to render a copy-only file", func(t *testing.T) {
		_, err := Render("urls.py", nil)
		assert.ErrorContains(t, err, "not a template")
	})

	t.Run("Should refuse unknown skeleton names", func(t *testing.T) {
		_, err := Render("nope.py", nil)
		assert.ErrorContains(t, err, "unknown skeleton file")
	})
}

func TestSkeleton(t *testing.T) {
	t.Run("Should reserve installation file names and the log directory", func(t *testing.T) {
		for _, name := range []string{"manage.py", "settings.py", "urls.py", "wsgi.py", "__init__.py", "README.md", "log"} {
			assert.True(t, IsReservedName(name), "name %s", name)
		}
	})
	t.Run("Should not reserve regular database file names", func(t *testing.T) {
		assert.False(t, IsReservedName("forum.db"))
	})
	t.Run("Should look up files across all sets", func(t *testing.T) {
		for _, name := range []string{"manage.py", "settings.py", "uwsgi.ini"} {
			f, ok := Lookup(name)
			require.True(t, ok, "file %s", name)
			assert.Equal(t, name, f.Name)
		}
		_, ok := Lookup("missing")
		assert.False(t, ok)
	})
	t.Run("Should mark executables and the settings file with tight permissions", func(t *testing.T) {
		manage, ok := Lookup("manage.py")
		require.True(t, ok)
		assert.EqualValues(t, 0o755, manage.Permissions)
		settings, ok := Lookup(SettingsFile)
		require.True(t, ok)
		assert.EqualValues(t, 0o600, settings.Permissions)
	})
}
