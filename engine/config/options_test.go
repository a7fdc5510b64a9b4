package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("Should ignore empty scalar values", func(t *testing.T) {
		opts := NewOptions()
		opts.Set("key", "")
		_, ok := opts.Get("key")
		assert.False(t, ok)
	})
	t.Run("Should ignore empty lists", func(t *testing.T) {
		opts := NewOptions()
		opts.SetList("nodes", nil)
		_, ok := opts.GetList("nodes")
		assert.False(t, ok)
	})
	t.Run("Should keep explicit values over merged defaults", func(t *testing.T) {
		opts := NewOptions()
		opts.Set("database_name", "mydb")
		require.NoError(t, opts.ApplyDefaults(map[string]string{
			"database_name": "forumdb",
			"app_name":      "forum_app",
		}))
		name, ok := opts.Get("database_name")
		require.True(t, ok)
		assert.Equal(t, "mydb", name)
		app, ok := opts.Get("app_name")
		require.True(t, ok)
		assert.Equal(t, "forum_app", app)
	})
}
