package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `View and change the settings stored in the config file.

Environment variables (DRIVELINK_*) and global flags override stored values
for a single run; they are not shown here.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Long: `Set a setting. Keys use dot notation.

Examples:
  drivelink config set api.url https://app.example.com
  drivelink config set callback.port 9000
  drivelink config set ui.locale ru`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

func init() {
	configShowCmd.Flags().Bool("json", false, "Output as JSON")
	configShowCmd.Flags().Bool("reveal", false, "Print secrets in full")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	reveal, _ := cmd.Flags().GetBool("reveal")
	values := make(map[string]string, len(domain.SettingKeys()))
	for _, key := range domain.SettingKeys() {
		v, err := settings.Value(key)
		if err != nil {
			return err
		}
		if isSecretSetting(key) && v != "" && !reveal {
			v = logger.Redact(v)
		}
		values[key] = v
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Config file: %s\n\n", settingsService.Path())
	for _, key := range domain.SettingKeys() {
		v := values[key]
		if v == "" {
			v = "(not set)"
		}
		cmd.Printf("  %-24s %s\n", key, v)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s updated\n", args[0])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Unset(args[0]); err != nil {
		return err
	}
	cmd.Printf("%s restored to default\n", args[0])
	return nil
}

func isSecretSetting(key string) bool {
	return key == domain.KeyAPIToken || key == domain.KeyDriveToken
}
