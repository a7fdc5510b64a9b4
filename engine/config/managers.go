package config

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/forumkit/forumkit/engine/project"
	"github.com/forumkit/forumkit/pkg/secrets"
)

// Option keys shared with the CLI layer.
const (
	OptNoSecretKey = "no_secret_key"
)

// dependsOnNetworkedDatabase gates credential fields on a non-embedded
// database engine.
func dependsOnNetworkedDatabase() *Dependency {
	return &Dependency{
		Field: "database_engine",
		When: func(value any) bool {
			engine, ok := value.(DatabaseEngine)
			return ok && !engine.Embedded()
		},
	}
}

// dependsOnCacheWithNodes gates node configuration on a cache engine that
// talks to external nodes.
func dependsOnCacheWithNodes() *Dependency {
	return &Dependency{
		Field: "cache_engine",
		When: func(value any) bool {
			engine, ok := value.(CacheEngine)
			return ok && engine.RequiresNodes()
		},
	}
}

// dependsOnRedis gates the db-index and password fields on redis.
func dependsOnRedis() *Dependency {
	return &Dependency{
		Field: "cache_engine",
		When: func(value any) bool {
			engine, ok := value.(CacheEngine)
			return ok && engine == CacheRedis
		},
	}
}

// newSetupManager groups the fields controlling where and how the site is
// installed, plus the generated secret.
func newSetupManager(fs afero.Fs) (*Manager, error) {
	return NewManager("setup", []*Field{
		{
			Name:     "dir_name",
			Prompt:   "Enter the directory where the forum site should be deployed",
			Required: true,
			Validate: validateInstallDir(fs),
			Ask:      askInstallDir,
		},
		{
			Name:     "app_name",
			Prompt:   "Enter the application subdirectory name",
			Default:  "forum_app",
			Validate: ValidateName,
		},
		{
			Name:     "logfile_name",
			Prompt:   "Enter the log file name",
			Default:  "forum.log",
			Validate: ValidateName,
		},
		{
			Name: "local_settings",
		},
		{
			Name:     "secret_key",
			Required: true,
			Ask:      generateSecretKey,
		},
	})
}

// newDatabaseManager groups the database connection fields. The engine
// resolves first; its value decides which siblings apply at all.
func newDatabaseManager(fs afero.Fs) (*Manager, error) {
	return NewManager("database", []*Field{
		{
			Name:      "database_engine",
			Prompt:    "Select a database engine: 1 - postgresql, 2 - sqlite, 3 - mysql, 4 - oracle",
			Default:   "2",
			Required:  true,
			Choices:   DatabaseEngineCodes(),
			Validate:  ValidateChoice(DatabaseEngineCodes()),
			Normalize: normalizeDatabaseEngine,
		},
		{
			Name:     "database_name",
			Prompt:   "Enter the database name",
			Default:  "forumdb",
			Required: true,
			Validate: ValidateName,
			Ask:      askDatabaseName,
		},
		{
			Name:      "database_user",
			Prompt:    "Enter the database user",
			Required:  true,
			DependsOn: dependsOnNetworkedDatabase(),
			Validate:  ValidateName,
		},
		{
			Name:      "database_password",
			Prompt:    "Enter the database password",
			Required:  true,
			DependsOn: dependsOnNetworkedDatabase(),
		},
		{
			Name:      "database_host",
			Prompt:    "Enter the database host, or leave empty for the engine default",
			DependsOn: dependsOnNetworkedDatabase(),
			Validate:  ValidateHost,
		},
		{
			Name:      "database_port",
			Prompt:    "Enter the database port, or leave empty for the engine default",
			DependsOn: dependsOnNetworkedDatabase(),
			Validate:  ValidatePort,
		},
	})
}

// newCacheManager groups the cache fields. When the resolved engine needs
// no external service the whole group contributes nothing to the output.
func newCacheManager() (*Manager, error) {
	return NewManager("cache", []*Field{
		{
			Name:      "cache_engine",
			Prompt:    "Select a cache engine: 1 - memcached, 2 - redis, 3 - none",
			Default:   "3",
			Required:  true,
			Choices:   CacheEngineCodes(),
			Validate:  ValidateChoice(CacheEngineCodes()),
			Normalize: normalizeCacheEngine,
		},
		{
			Name:         "cache_nodes",
			Prompt:       "Enter the cache nodes as <host>:<port>, separated by commas",
			Required:     true,
			List:         true,
			DependsOn:    dependsOnCacheWithNodes(),
			ValidateEach: ValidateHostPort,
		},
		{
			Name:      "cache_db",
			Prompt:    "Enter the redis database index",
			Default:   "1",
			DependsOn: dependsOnRedis(),
			Validate:  ValidateNumber,
		},
		{
			Name:      "cache_password",
			DependsOn: dependsOnRedis(),
		},
	}, WithFinalize(dropUnusedCacheFields))
}

// dropUnusedCacheFields removes the whole cache group from the output
// when no external cache engine was selected.
func dropUnusedCacheFields(r *Resolved) error {
	if r.CacheEngine() != CacheNone {
		return nil
	}
	for _, name := range []string{"cache_engine", "cache_nodes", "cache_db", "cache_password"} {
		r.delete(name)
	}
	return nil
}

func normalizeDatabaseEngine(value string) (any, error) {
	return ParseDatabaseEngine(value)
}

func normalizeCacheEngine(value string) (any, error) {
	return ParseCacheEngine(value)
}

// generateSecretKey resolves the secret-key field. Generation never
// depends on other fields and always succeeds; --no-secret-key resolves
// to an empty value instead.
func generateSecretKey(rc *ResolveContext) (any, error) {
	if v, _ := rc.Options.Get(OptNoSecretKey); v == "true" {
		return "", nil
	}
	key, err := secrets.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secret key: %w", err)
	}
	return key, nil
}

// validateInstallDir rejects paths that exist as something other than a
// directory. An existing directory is fine: deploying into a prior
// installation is the add-to-existing-project flow.
func validateInstallDir(fs afero.Fs) ValidateFunc {
	return func(value string) error {
		if err := requireNonEmpty(value); err != nil {
			return err
		}
		info, err := fs.Stat(value)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("%q exists and is not a directory", value)
		}
		return nil
	}
}

func requireNonEmpty(value string) error {
	if value == "" {
		return fmt.Errorf("a value is required")
	}
	return nil
}

// askInstallDir loops until the operator names a usable directory.
func askInstallDir(rc *ResolveContext) (any, error) {
	check := validateInstallDir(rc.Fs)
	for {
		value, err := rc.Console.Prompt("Enter the directory where the forum site should be deployed", true)
		if err != nil {
			return nil, err
		}
		if err := check(value); err != nil {
			if rc.Log != nil {
				rc.Log.Warn("unusable install directory", "error", err)
			}
			continue
		}
		return value, nil
	}
}

// askDatabaseName prompts for a database name. For embedded-file engines
// the candidate is checked against the target tree: an existing directory
// or a reserved installation name is rejected, an existing regular file
// needs explicit confirmation to be reused. Force skips the target-state
// checks entirely.
func askDatabaseName(rc *ResolveContext) (any, error) {
	embedded := rc.Resolved.DatabaseEngine().Embedded()
	prompt := "Enter the database name"
	if embedded {
		prompt = "Enter the database file name"
	}
	for {
		value, err := rc.Console.Prompt(prompt, true)
		if err != nil {
			return nil, err
		}
		if err := ValidateName(value); err != nil {
			if rc.Log != nil {
				rc.Log.Warn("invalid answer, asking again", "field", "database_name", "error", err)
			}
			continue
		}
		if !embedded || rc.Force {
			return value, nil
		}
		accepted, err := checkDatabaseFileName(rc, value)
		if err != nil {
			return nil, err
		}
		if accepted {
			return value, nil
		}
	}
}

// checkDatabaseFileName applies the ordered reserved-name rules to an
// embedded database file candidate.
func checkDatabaseFileName(rc *ResolveContext, value string) (bool, error) {
	info, statErr := rc.Fs.Stat(value)
	if statErr == nil && info.IsDir() {
		if rc.Log != nil {
			rc.Log.Warn("name points at a directory, choose another name", "name", value)
		}
		return false, nil
	}
	if project.IsReservedName(value) {
		if rc.Log != nil {
			rc.Log.Warn("name is reserved for installation files, choose another name", "name", value)
		}
		return false, nil
	}
	if statErr == nil {
		// Existing regular file: reuse needs explicit confirmation.
		reuse, err := rc.Console.Confirm(fmt.Sprintf("file %s exists, use it anyway?", value))
		if err != nil {
			return false, err
		}
		return reuse, nil
	}
	return true, nil
}
