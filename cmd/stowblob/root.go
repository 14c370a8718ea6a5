// File: cmd/stowblob/root.go
package main

import (
	"errors"
	"fmt"
	"stowblob/internal/config"
	"stowblob/internal/flags"
	"stowblob/internal/logger"
	"strings"

	"github.com/spf13/cobra"
)

var errMissingAction = errors.New("missing action: expected one of list, upload, download, config")

func newRootCmd(app *appContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stowblob",
		Short: "stowblob lists, uploads and downloads files in a cloud storage container.",
		Long: `A small CLI to archive files into a single cloud storage container and
restore them. The container, credentials and restore directory are read from
an INI file; Azure Blob Storage is the default provider.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.configure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return errMissingAction
		},
	}

	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Err)

	rootCmd.PersistentFlags().StringVar(&app.configPath, flags.Config, config.DefaultConfigFileName, "Path to the INI configuration file")
	rootCmd.PersistentFlags().StringVar(&app.levelName, flags.Level, "info", fmt.Sprintf("Log level (%s)", strings.Join(logger.LevelNames(), ", ")))

	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newUploadCmd(app))
	rootCmd.AddCommand(newDownloadCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))

	return rootCmd
}

// Rewrites -cfg and -lvl (and their -name=value forms) to the double-dash spelling the flag parser expects
func normalizeLegacyFlags(args []string) []string {
	normalized := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(normalized, args[i:]...)
		}
		normalized = append(normalized, normalizeLegacyFlag(arg))
	}
	return normalized
}

func normalizeLegacyFlag(arg string) string {
	if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
		return arg
	}
	name, _, _ := strings.Cut(arg[1:], "=")
	for _, legacy := range flags.Legacy {
		if name == legacy {
			return "-" + arg
		}
	}
	return arg
}
