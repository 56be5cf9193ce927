package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/browser"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/oauth"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/core/services"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// defaultConnectTimeout bounds the wait for the authorization redirect.
const defaultConnectTimeout = 5 * time.Minute

// newBrowserOpener returns the opener used unless --no-browser is given.
var newBrowserOpener = func() driven.BrowserOpener {
	return browser.NewSystem()
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect Google Drive",
	Long: `Connect Google Drive to your account.

drivelink asks the server for an authorization URL, opens it in your browser
and listens on a loopback address for the redirect. The authorization code is
confirmed with the server as soon as the redirect arrives.

Use --no-wait when the browser runs on another machine, then finish with
'drivelink callback <redirect-url>'.`,
	RunE: runConnect,
}

func init() {
	connectCmd.Flags().Bool("no-browser", false, "Print the authorization URL instead of opening it")
	connectCmd.Flags().Bool("no-wait", false, "Do not listen for the redirect")
	connectCmd.Flags().Duration("timeout", defaultConnectTimeout, "How long to wait for the redirect")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, _ []string) error {
	if flows == nil {
		return errors.New("integration flows not configured")
	}

	noBrowser, _ := cmd.Flags().GetBool("no-browser")
	noWait, _ := cmd.Flags().GetBool("no-wait")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx := cmd.Context()

	nav := newRouteWaiter()
	handler := flows.CallbackHandler(driving.Surface{Navigator: nav})
	defer handler.Close()

	var server *oauth.CallbackServer
	if !noWait {
		server = oauth.NewCallbackServer(oauth.Config{
			Port: callbackSettings.Port,
			Path: callbackSettings.Path,
			Text: text,
		}, handler)
		if err := server.Start(); err != nil {
			return fmt.Errorf("start callback server: %w", err)
		}
		defer func() {
			if err := server.Stop(); err != nil {
				logger.Warn("stop callback server: %v", err)
			}
		}()
		cmd.Println(msg(i18n.KeyCLIListening, server.RedirectURI()))
	}

	var opener driven.BrowserOpener
	if !noBrowser {
		opener = newBrowserOpener()
	}
	panel := flows.StatusPanel(driving.Surface{Opener: opener})
	defer panel.Close()

	authURL, err := panel.Connect(ctx)
	switch {
	case err != nil && authURL == "":
		return describe(err, services.KeyAuthURLFailed)
	case err != nil:
		logger.Warn("%s", panel.Snapshot().Error)
	}
	cmd.Println(msg(i18n.KeyPanelOpenURL))
	cmd.Println(authURL)

	if server == nil {
		panel.AbortConnect(nil)
		return nil
	}

	cmd.Println(msg(i18n.KeyPanelWaiting))
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := server.Wait(waitCtx)
	if err != nil {
		panel.AbortConnect(err)
		if errors.Is(err, oauth.ErrTimeout) {
			return &userError{text: msg(i18n.KeyCLITimeout), err: err}
		}
		return err
	}
	panel.AbortConnect(nil)
	return finishCallback(cmd, result.Snapshot, result.Err, nav)
}
