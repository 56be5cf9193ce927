// Package cli provides the cobra command tree for drivelink.
// It is a driving adapter: commands call into the core through the
// driving ports and never touch driven adapters directly.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/core/services"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// annotationOffline marks commands that run without services.
const annotationOffline = "offline"

// version is set at build time via -ldflags or SetVersion.
var version = "dev"

// Options holds the global flags.
type Options struct {
	ConfigDir string
	APIURL    string
	Locale    string
	Verbose   bool
}

// Services holds everything commands call into.
type Services struct {
	Integration   driving.IntegrationService
	Folders       driving.FolderService
	Settings      driving.SettingsService
	Flows         driving.Flows
	Text          driven.Localizer
	Callback      domain.CallbackSettings
	RefreshStatus func(ctx context.Context) error
}

// Bootstrap builds the services once global flags are parsed. The returned
// function releases whatever the services hold.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	integrationService driving.IntegrationService
	folderService      driving.FolderService
	settingsService    driving.SettingsService
	flows              driving.Flows
	text               driven.Localizer
	callbackSettings   domain.CallbackSettings
	refreshStatus      func(ctx context.Context) error

	bootstrap Bootstrap
	release   func()
	options   Options
)

var rootCmd = &cobra.Command{
	Use:   "drivelink",
	Short: "Connect Google Drive to your channels",
	Long: `drivelink manages the Google Drive integration of your account on the
application server: connect and disconnect Google Drive, complete the OAuth
redirect, and create the Drive folders a channel uploads into.

Run without a subcommand to see this help, or use 'drivelink tui' for the
interactive interface.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if release != nil {
			release()
			release = nil
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&options.Verbose, "verbose", "v", false, "Enable debug output")
	flags.StringVar(&options.ConfigDir, "config-dir", "", "Config directory (default ~/.drivelink)")
	flags.StringVar(&options.APIURL, "api-url", "", "Application server URL")
	flags.StringVar(&options.Locale, "locale", "", "Message language (en, ru)")
}

// SetBootstrap installs the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by 'drivelink version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and prints any error once.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(options.Verbose)
	if bootstrap == nil || cmd.Annotations[annotationOffline] == "true" {
		return nil
	}

	svc, rel, err := bootstrap(cmd.Context(), options)
	if err != nil {
		return err
	}
	useServices(svc)
	release = rel
	return nil
}

func useServices(svc *Services) {
	if svc == nil {
		return
	}
	integrationService = svc.Integration
	folderService = svc.Folders
	settingsService = svc.Settings
	flows = svc.Flows
	text = svc.Text
	callbackSettings = svc.Callback
	refreshStatus = svc.RefreshStatus
}

// msg renders a message key, falling back to the key when no localizer is set.
func msg(key string, args ...any) string {
	if text == nil {
		if len(args) == 0 {
			return key
		}
		return fmt.Sprintf("%s: %v", key, args)
	}
	return text.Text(key, args...)
}

// userError keeps err inspectable while showing its localized description.
type userError struct {
	text string
	err  error
}

func (e *userError) Error() string { return e.text }
func (e *userError) Unwrap() error { return e.err }

func describe(err error, fallbackKey string) error {
	if err == nil {
		return nil
	}
	var ue *userError
	if errors.As(err, &ue) {
		return err
	}
	return &userError{text: services.Describe(text, err, fallbackKey), err: err}
}
