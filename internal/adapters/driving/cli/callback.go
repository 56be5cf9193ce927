package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/oauth"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/core/services"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
)

var callbackCmd = &cobra.Command{
	Use:   "callback <redirect-url>",
	Short: "Complete a connection from a redirect URL",
	Long: `Complete a Google Drive connection from the URL the browser was
redirected to after authorization. Use this when 'drivelink connect' could not
receive the redirect itself, for example on a remote machine.

Examples:
  drivelink callback 'http://127.0.0.1:8765/google-drive/callback?code=4/0Ab...'
  drivelink callback 'code=4/0Ab...'`,
	Args: cobra.ExactArgs(1),
	RunE: runCallback,
}

func init() {
	rootCmd.AddCommand(callbackCmd)
}

func runCallback(cmd *cobra.Command, args []string) error {
	if flows == nil {
		return errors.New("integration flows not configured")
	}

	params, err := oauth.ParseRedirect(args[0])
	if err != nil {
		return err
	}

	nav := newRouteWaiter()
	handler := flows.CallbackHandler(driving.Surface{Navigator: nav})
	defer handler.Close()

	err = handler.Handle(cmd.Context(), params)
	return finishCallback(cmd, handler.Snapshot(), err, nav)
}

// routeWaiter receives the callback flow's return-to-settings navigation.
type routeWaiter chan string

func newRouteWaiter() routeWaiter {
	return make(routeWaiter, 1)
}

// Navigate implements driven.Navigator.
func (w routeWaiter) Navigate(route string) {
	select {
	case w <- route:
	default:
	}
}

// finishCallback prints the callback outcome. On success it waits for the
// flow to return to settings and then prints the fresh status.
func finishCallback(cmd *cobra.Command, snap domain.CallbackSnapshot, err error, nav routeWaiter) error {
	if err != nil {
		if snap.Error != "" {
			return &userError{text: snap.Error, err: err}
		}
		return describe(err, services.KeyConnectFailed)
	}

	cmd.Println(msg(i18n.KeyCallbackSuccess))
	if snap.Status != nil && snap.Status.Email != "" {
		cmd.Println(msg(i18n.KeyCallbackSuccessAs, snap.Status.Email))
	}
	cmd.Println(msg(i18n.KeyCallbackRedirecting))

	ctx := cmd.Context()
	select {
	case <-nav:
	case <-ctx.Done():
		return ctx.Err()
	}

	if integrationService == nil {
		printStatus(cmd, snap.Status)
		return nil
	}
	status, err := integrationService.Status(ctx)
	if err != nil {
		return describe(err, services.KeyStatusLoadFailed)
	}
	printStatus(cmd, status)
	return nil
}
