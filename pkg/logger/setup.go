package logger

import (
	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

// getDefaultStyles returns the text-formatter styles used for console output.
func getDefaultStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("63"))
	styles.Levels[charmlog.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("86"))
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("192"))
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("204"))
	return styles
}

// SetupLogger initializes the default logger from the CLI verbosity flag.
func SetupLogger(verbosity int, logJSON bool) error {
	return Init(&Config{
		Level:      FromVerbosity(verbosity),
		Output:     DefaultConfig().Output,
		JSON:       logJSON,
		TimeFormat: "15:04:05",
	})
}
