// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Config flags point at the INI configuration file
	Config = "cfg"

	// Level flags select the minimum log level (debug, info, warning, error, critical)
	Level = "lvl"

	// Output flags select how a blob listing is rendered
	Output      = "output"
	OutputShort = "o"

	// Force flags are used to bypass interactive confirmation prompts when overwrite is disabled
	Force      = "force"
	ForceShort = "f"
)

// Global flags that are also accepted with a single leading dash, e.g. -cfg path or -lvl=debug
var Legacy = []string{Config, Level}
