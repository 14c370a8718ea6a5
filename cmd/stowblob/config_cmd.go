// File: cmd/stowblob/config_cmd.go
package main

import (
	"fmt"
	"stowblob/internal/config"
	"stowblob/pkg/formatter"
	"strings"

	"github.com/spf13/cobra"
)

// Keys whose values are never echoed by 'config list'
var secretKeys = map[string]bool{
	"storage.key": true,
}

func newConfigCmd(app *appContainer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long:  `Manage the INI configuration file. You can set, get, list, and delete configuration values.`,
	}

	configSetCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration key-value pair",
		Long:  `Sets a configuration value. For example: 'stowblob config set storage.container backups'`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			value := args[1]

			if err := app.ConfigManager.SetValue(key, value); err != nil {
				return fmt.Errorf("error setting configuration: %w", err)
			}
			fmt.Fprintf(app.Out, "Configuration set: %s = %s\n", key, displayValue(key, value))
			return nil
		},
	}

	configGetCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value by key",
		Long:  `Retrieves a configuration value for a given key. For example: 'stowblob config get storage.container'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			value, exists, err := app.ConfigManager.GetValue(key)
			if err != nil {
				return err
			}

			if !exists || value == "" {
				return fmt.Errorf("configuration key '%s' not found or not set", key)
			}
			fmt.Fprintf(app.Out, "%s = %s\n", key, value)
			return nil
		},
	}

	configDeleteCmd := &cobra.Command{
		Use:   "delete [key]",
		Short: "Delete a configuration value by key",
		Long:  `Deletes a configuration value for a given key. For example: 'stowblob config delete general.restoredir'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			deleted, err := app.ConfigManager.DeleteValue(key)
			if err != nil {
				return fmt.Errorf("error deleting configuration: %w", err)
			}

			if !deleted {
				return fmt.Errorf("configuration key '%s' not found", key)
			}
			fmt.Fprintf(app.Out, "Configuration key '%s' deleted\n", key)
			return nil
		},
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all current configuration values",
		Long:  `Displays all the key-value pairs currently stored in the configuration file. The storage key is masked.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.ConfigManager.GetAllSettings()
			if err != nil {
				return err
			}

			displaySettings := make(map[string]string)
			for k, v := range settings {
				if v != "" {
					displaySettings[k] = displayValue(k, v)
				}
			}

			if len(displaySettings) == 0 {
				fmt.Fprintln(app.Out, "No configuration values set. Use 'stowblob config set <key> <value>'.")
				return nil
			}

			fmt.Fprintf(app.Out, "Current configuration (%s):\n", app.ConfigManager.Path())
			fmt.Fprint(app.Out, formatter.FormatSettings(displaySettings, config.SortedKeys(displaySettings)))
			return nil
		},
	}

	configCmd.AddCommand(configSetCmd, configGetCmd, configDeleteCmd, configListCmd)
	return configCmd
}

func displayValue(key, value string) string {
	if secretKeys[key] && value != "" {
		return "********"
	}
	return value
}
