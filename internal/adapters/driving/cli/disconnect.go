package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/terminal"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/core/services"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
)

// newConfirmer returns the prompt used when --yes is not given.
var newConfirmer = func(cmd *cobra.Command) driven.Confirmer {
	return terminal.NewPrompter(os.Stdin, cmd.OutOrStdout())
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect Google Drive",
	Long: `Revoke the Google Drive connection on the server.

You are asked to confirm first. When input is not a terminal the question is
declined unless --yes is given.`,
	RunE: runDisconnect,
}

func init() {
	disconnectCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(disconnectCmd)
}

func runDisconnect(cmd *cobra.Command, _ []string) error {
	if flows == nil {
		return errors.New("integration flows not configured")
	}

	var confirmer driven.Confirmer = terminal.AssumeYes{}
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		confirmer = newConfirmer(cmd)
	}

	ctx := cmd.Context()
	panel := flows.StatusPanel(driving.Surface{Confirmer: confirmer})
	defer panel.Close()

	if err := panel.Mount(ctx); err != nil {
		return describe(err, services.KeyStatusLoadFailed)
	}
	if panel.Snapshot().State != domain.PanelConnected {
		cmd.Println(msg(i18n.KeyPanelNotConnected))
		return nil
	}

	err := panel.Disconnect(ctx)
	switch {
	case errors.Is(err, domain.ErrDisconnectNotConfirmed):
		cmd.Println(msg(i18n.KeyPanelCancelled))
		return nil
	case err != nil:
		if snap := panel.Snapshot(); snap.Error != "" {
			return &userError{text: snap.Error, err: err}
		}
		return describe(err, services.KeyDisconnectFailed)
	}

	cmd.Println(msg(i18n.KeyCLIDisconnected))
	return nil
}
