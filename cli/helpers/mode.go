package helpers

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isRunningInCI checks if we're running in a CI/CD environment
func isRunningInCI() bool {
	if os.Getenv("CI") != "" {
		return true
	}
	ciVars := []string{
		"JENKINS_HOME",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"BUILDKITE",
		"DRONE",
		"TEAMCITY_VERSION",
		"CONTINUOUS_INTEGRATION",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// IsInteractiveEnvironment reports whether prompting the operator makes
// sense at all. The --no-input flag overrides this detection; without it,
// a non-terminal stdin/stdout or a CI environment disables prompts.
func IsInteractiveEnvironment() bool {
	if isRunningInCI() {
		return false
	}
	stdinIsTerminal := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	stdoutIsTerminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !stdinIsTerminal || !stdoutIsTerminal {
		return false
	}
	if term := os.Getenv("TERM"); term == "dumb" {
		return false
	}
	return true
}

// ShouldUseColor determines if styled output should be used
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return !isRunningInCI()
}
