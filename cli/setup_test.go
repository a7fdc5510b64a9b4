package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/forumkit/engine/config"
	"github.com/forumkit/forumkit/engine/console"
	"github.com/forumkit/forumkit/engine/deploy"
)

func TestRootCmd(t *testing.T) {
	t.Run("Should register the setup command", func(t *testing.T) {
		root := RootCmd()
		setup, _, err := root.Find([]string{"setup"})
		require.NoError(t, err)
		assert.Equal(t, "setup", setup.Name())
	})
	t.Run("Should register the documented flags", func(t *testing.T) {
		setup := SetupCmd()
		for _, name := range []string{
			"dir-name", "app-name", "db-engine", "db-name", "db-user",
			"db-password", "db-host", "db-port", "cache-engine", "cache-node",
			"cache-db", "cache-password", "logfile-name", "append-settings",
			"create-project", "no-secret-key", "force", "dry-run",
			"use-defaults", "no-input", "verbose",
		} {
			assert.NotNil(t, setup.Flags().Lookup(name), "flag --%s", name)
		}
		assert.Equal(t, "n", setup.Flags().Lookup("dir-name").Shorthand)
		assert.Equal(t, "e", setup.Flags().Lookup("db-engine").Shorthand)
		assert.Equal(t, "django", setup.Flags().Lookup("create-project").DefValue)
		assert.Equal(t, "1", setup.Flags().Lookup("verbose").DefValue)
	})
}

func TestSetupFlagsToOptions(t *testing.T) {
	t.Run("Should map flag values onto option keys", func(t *testing.T) {
		flags := &setupFlags{
			dirName:     "/srv/forum",
			dbEngine:    "1",
			dbUser:      "forum",
			cacheNodes:  []string{"localhost:11211"},
			noSecretKey: true,
		}
		opts := flags.toOptions()

		dir, ok := opts.Get("dir_name")
		require.True(t, ok)
		assert.Equal(t, "/srv/forum", dir)
		engine, ok := opts.Get("database_engine")
		require.True(t, ok)
		assert.Equal(t, "1", engine)
		nodes, ok := opts.GetList("cache_nodes")
		require.True(t, ok)
		assert.Equal(t, []string{"localhost:11211"}, nodes)
		noKey, ok := opts.Get(config.OptNoSecretKey)
		require.True(t, ok)
		assert.Equal(t, "true", noKey)
	})
	t.Run("Should leave unset flags out of the options", func(t *testing.T) {
		opts := (&setupFlags{}).toOptions()
		_, ok := opts.Get("dir_name")
		assert.False(t, ok)
		_, ok = opts.Get(config.OptNoSecretKey)
		assert.False(t, ok)
	})
}

func TestSetupVerbosity(t *testing.T) {
	t.Run("Should reject out-of-range verbosity", func(t *testing.T) {
		for _, value := range []string{"3", "-1", "9"} {
			cmd := SetupCmd()
			cmd.SetArgs([]string{"--verbose", value})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			err := cmd.Execute()
			require.Error(t, err, "verbosity %s", value)
			assert.Contains(t, err.Error(), "verbosity must be between 0 and 2")
		}
	})
}

func TestBuildConsole(t *testing.T) {
	t.Run("Should refuse to prompt when no-input is set", func(t *testing.T) {
		cons := buildConsole(&setupFlags{noInput: true})
		_, err := cons.Prompt("anything", true)
		assert.ErrorIs(t, err, console.ErrNonInteractive)
	})
}

func resolveForOutput(t *testing.T, overrides map[string]string) *config.Resolved {
	t.Helper()
	c, err := config.NewCollection(config.CollectionConfig{
		Console:     console.NewNoInput(),
		Fs:          afero.NewMemMapFs(),
		UseDefaults: true,
	})
	require.NoError(t, err)
	opts := config.NewOptions()
	opts.Set("dir_name", "/srv/forum")
	opts.Set("database_name", "forum.db")
	for k, v := range overrides {
		opts.Set(k, v)
	}
	resolved, err := c.Complete(opts)
	require.NoError(t, err)
	return resolved
}

func TestPrintDryRun(t *testing.T) {
	t.Run("Should print the configuration and the plan", func(t *testing.T) {
		resolved := resolveForOutput(t, nil)
		plan, err := deploy.Build(resolved, &deploy.TargetState{}, deploy.ModeStandard, false)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, printDryRun(&out, resolved, plan))
		assert.Contains(t, out.String(), "database_name: forum.db")
		assert.Contains(t, out.String(), "create-dir /srv/forum")
		assert.Contains(t, out.String(), "render settings.py -> /srv/forum/forum_app/settings.py")
	})
}

func TestPrintNextSteps(t *testing.T) {
	t.Run("Should describe a fresh deployment", func(t *testing.T) {
		var out bytes.Buffer
		printNextSteps(&out, resolveForOutput(t, nil), &deploy.TargetState{}, deploy.ModeStandard)
		assert.Contains(t, out.String(), "Next steps")
		assert.Contains(t, out.String(), "/srv/forum/manage.py runserver")
	})
	t.Run("Should describe files added to an existing project", func(t *testing.T) {
		var out bytes.Buffer
		state := &deploy.TargetState{Exists: true, HasProject: true}
		printNextSteps(&out, resolveForOutput(t, nil), state, deploy.ModeStandard)
		assert.Contains(t, out.String(), "existing project")
		assert.NotContains(t, out.String(), "Next steps")
	})
	t.Run("Should hint at the database driver for networked engines", func(t *testing.T) {
		resolved := resolveForOutput(t, map[string]string{
			"database_engine":   "1",
			"database_user":     "forum",
			"database_password": "pw",
		})
		var out bytes.Buffer
		printNextSteps(&out, resolved, &deploy.TargetState{}, deploy.ModeStandard)
		assert.Contains(t, out.String(), "pip install psycopg2")
	})
	t.Run("Should print nothing when project creation is opted out", func(t *testing.T) {
		var out bytes.Buffer
		printNextSteps(&out, resolveForOutput(t, nil), &deploy.TargetState{}, deploy.ModeNone)
		assert.Empty(t, out.String())
	})
}
