package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/services"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the Google Drive connection status",
	Long: `Ask the application server whether Google Drive is connected and
print the connected account when there is one.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if integrationService == nil {
		return errors.New("integration service not configured")
	}

	status, err := integrationService.Status(cmd.Context())
	if err != nil {
		return describe(err, services.KeyStatusLoadFailed)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printStatus(cmd, status)
	return nil
}

func printStatus(cmd *cobra.Command, status *domain.IntegrationStatus) {
	switch {
	case status == nil || !status.Connected:
		cmd.Println(msg(i18n.KeyPanelNotConnected))
	case status.Email != "":
		cmd.Println(msg(i18n.KeyPanelConnectedAs, status.Email))
	default:
		cmd.Println(msg(i18n.KeyPanelConnected))
	}
}
