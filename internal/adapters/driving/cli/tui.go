package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for drivelink.

The TUI shows the Google Drive integration panel, completes a connection from
a pasted redirect URL, and creates the folders for a channel.

Controls:
  ↑/k, ↓/j - Navigate the menu
  Enter    - Select / Submit
  c, d     - Connect / Disconnect Google Drive
  f        - Channel folders
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("channel-name", "", "Pre-fill the channel name in the folder step")
	tuiCmd.Flags().String("channel-uuid", "", "Pre-fill the channel UUID in the folder step")
	tuiCmd.Flags().Bool("no-browser", false, "Show the authorization URL instead of opening it")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if flows == nil {
		return errors.New("integration flows not configured")
	}

	ports := &tui.Ports{
		Flows:         flows,
		Text:          text,
		Folders:       folderService,
		RefreshStatus: refreshStatus,
	}
	ports.ChannelName, _ = cmd.Flags().GetString("channel-name")
	ports.ChannelUUID, _ = cmd.Flags().GetString("channel-uuid")
	if noBrowser, _ := cmd.Flags().GetBool("no-browser"); !noBrowser {
		ports.Opener = newBrowserOpener()
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
