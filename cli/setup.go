package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/forumkit/forumkit/cli/helpers"
	"github.com/forumkit/forumkit/engine/config"
	"github.com/forumkit/forumkit/engine/console"
	"github.com/forumkit/forumkit/engine/deploy"
	"github.com/forumkit/forumkit/pkg/logger"
)

type setupFlags struct {
	dirName       string
	appName       string
	dbEngine      string
	dbName        string
	dbUser        string
	dbPassword    string
	dbHost        string
	dbPort        string
	cacheEngine   string
	cacheNodes    []string
	cacheDB       string
	cachePassword string
	logfileName   string
	localSettings string
	createProject string
	noSecretKey   bool
	force         bool
	dryRun        bool
	useDefaults   bool
	noInput       bool
	logJSON       bool
	verbosity     int
}

// SetupCmd builds the setup command: resolve the configuration from
// flags, prompts, and defaults, then deploy it into the target directory.
func SetupCmd() *cobra.Command {
	flags := &setupFlags{}
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Deploy a forum site into a target directory",
		Long: `Resolve the site configuration from flags, interactive prompts, and
built-in defaults, then materialize it into the target directory. Safe to
re-run: existing files are kept and reported, never clobbered.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd, flags)
		},
	}
	registerSetupFlags(cmd.Flags(), flags)
	return cmd
}

func registerSetupFlags(f *pflag.FlagSet, flags *setupFlags) {
	f.StringVarP(&flags.dirName, "dir-name", "n", "", "directory where the site is deployed")
	f.StringVar(&flags.appName, "app-name", "", "application subdirectory name")
	f.StringVarP(&flags.dbEngine, "db-engine", "e", "", "database engine code (1 - postgresql, 2 - sqlite, 3 - mysql, 4 - oracle)")
	f.StringVarP(&flags.dbName, "db-name", "d", "", "database name, or file name for sqlite")
	f.StringVarP(&flags.dbUser, "db-user", "u", "", "database user")
	f.StringVarP(&flags.dbPassword, "db-password", "p", "", "database password")
	f.StringVar(&flags.dbHost, "db-host", "", "database host, empty for the engine default")
	f.StringVar(&flags.dbPort, "db-port", "", "database port, empty for the engine default")
	f.StringVar(&flags.cacheEngine, "cache-engine", "", "cache engine code (1 - memcached, 2 - redis, 3 - none)")
	f.StringArrayVar(&flags.cacheNodes, "cache-node", nil, "cache node as <host>:<port>, repeatable")
	f.StringVar(&flags.cacheDB, "cache-db", "", "redis database index")
	f.StringVar(&flags.cachePassword, "cache-password", "", "redis password")
	f.StringVar(&flags.logfileName, "logfile-name", "", "log file name created under the log directory")
	f.StringVar(&flags.localSettings, "append-settings", "", "file whose content is appended to the generated settings")
	f.StringVar(&flags.createProject, "create-project", "django", "deployment mode (django, container-uwsgi, none)")
	f.BoolVar(&flags.noSecretKey, "no-secret-key", false, "leave the secret key empty instead of generating one")
	f.BoolVar(&flags.force, "force", false, "redeploy project files even over an existing installation")
	f.BoolVar(&flags.dryRun, "dry-run", false, "resolve and print the configuration and plan without writing")
	f.BoolVar(&flags.useDefaults, "use-defaults", false, "fill unanswered fields from the built-in defaults")
	f.BoolVar(&flags.noInput, "no-input", false, "never prompt; missing required values fail")
	f.BoolVar(&flags.logJSON, "json-log", false, "emit log lines as JSON")
	f.IntVarP(&flags.verbosity, "verbose", "v", 1, "output verbosity, 0 to 2")
}

func runSetup(cmd *cobra.Command, flags *setupFlags) error {
	if flags.verbosity < 0 || flags.verbosity > 2 {
		return helpers.NewCliError("INVALID_FLAG",
			fmt.Sprintf("verbosity must be between 0 and 2, got %d", flags.verbosity))
	}
	if err := logger.SetupLogger(flags.verbosity, flags.logJSON); err != nil {
		return err
	}
	log := logger.GetDefault()
	mode, err := deploy.ParseMode(flags.createProject)
	if err != nil {
		return helpers.NewCliError("INVALID_FLAG", err.Error())
	}
	fs := afero.NewOsFs()
	collection, err := config.NewCollection(config.CollectionConfig{
		Console:     buildConsole(flags),
		Fs:          fs,
		Log:         log,
		UseDefaults: flags.useDefaults,
		DryRun:      flags.dryRun,
		Force:       flags.force,
	})
	if err != nil {
		return err
	}
	resolved, err := collection.Complete(flags.toOptions())
	if err != nil {
		return err
	}
	state, err := deploy.DetectTargetState(fs, resolved.String("dir_name"), resolved.String("local_settings"))
	if err != nil {
		return err
	}
	plan, err := deploy.Build(resolved, state, mode, flags.force)
	if err != nil {
		return err
	}
	if flags.dryRun {
		return printDryRun(cmd.OutOrStdout(), resolved, plan)
	}
	if err := deploy.NewInstaller(fs, log).Execute(plan); err != nil {
		return err
	}
	printNextSteps(cmd.OutOrStdout(), resolved, state, mode)
	return nil
}

// buildConsole picks the prompt implementation. A terminal that cannot
// prompt behaves exactly like --no-input.
func buildConsole(flags *setupFlags) console.Console {
	if flags.noInput || !helpers.IsInteractiveEnvironment() {
		return console.NewNoInput()
	}
	return console.NewTerminal()
}

// toOptions maps the flag values onto the option keys the resolution
// engine understands. Empty flags stay unset so prompts and defaults
// apply.
func (f *setupFlags) toOptions() *config.Options {
	opts := config.NewOptions()
	opts.Set("dir_name", f.dirName)
	opts.Set("app_name", f.appName)
	opts.Set("database_engine", f.dbEngine)
	opts.Set("database_name", f.dbName)
	opts.Set("database_user", f.dbUser)
	opts.Set("database_password", f.dbPassword)
	opts.Set("database_host", f.dbHost)
	opts.Set("database_port", f.dbPort)
	opts.Set("cache_engine", f.cacheEngine)
	opts.SetList("cache_nodes", f.cacheNodes)
	opts.Set("cache_db", f.cacheDB)
	opts.Set("cache_password", f.cachePassword)
	opts.Set("logfile_name", f.logfileName)
	opts.Set("local_settings", f.localSettings)
	if f.noSecretKey {
		opts.Set(config.OptNoSecretKey, "true")
	}
	return opts
}

// printDryRun writes the resolved configuration as YAML followed by the
// computed plan. Nothing on disk changes in this mode.
func printDryRun(out io.Writer, resolved *config.Resolved, plan []deploy.Operation) error {
	data, err := resolved.MarshalYAML()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "resolved configuration:")
	fmt.Fprint(out, string(data))
	fmt.Fprintln(out, "plan:")
	for _, op := range plan {
		fmt.Fprintf(out, "  %s\n", op)
	}
	return nil
}

var (
	epilogueTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	epilogueHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("192"))
)

// printNextSteps tells the operator what remains to be done by hand. The
// message differs for a fresh deployment and for files added to an
// already-deployed project.
func printNextSteps(out io.Writer, resolved *config.Resolved, state *deploy.TargetState, mode deploy.Mode) {
	if mode == deploy.ModeNone {
		return
	}
	title := func(s string) string {
		if helpers.ShouldUseColor() {
			return epilogueTitleStyle.Render(s)
		}
		return s
	}
	hintLine := func(s string) string {
		if helpers.ShouldUseColor() {
			return epilogueHintStyle.Render(s)
		}
		return s
	}
	dir := resolved.String("dir_name")
	app := resolved.String("app_name")
	if state.HasProject {
		fmt.Fprintln(out, title("Application files added to the existing project."))
		fmt.Fprintf(out, "Review the settings in %s/%s/settings.py and merge any reported conflicts.\n", dir, app)
	} else {
		fmt.Fprintln(out, title("The forum site was deployed."))
		fmt.Fprintf(out, "Next steps:\n")
		fmt.Fprintf(out, "  1. Review the settings in %s/%s/settings.py\n", dir, app)
		fmt.Fprintf(out, "  2. Create the database and run the migrations\n")
		fmt.Fprintf(out, "  3. Start the site with %s/manage.py runserver\n", dir)
	}
	if hint := resolved.DatabaseEngine().DriverHint(); hint != "" {
		fmt.Fprintln(out, hintLine("Database driver required: "+hint))
	}
}
