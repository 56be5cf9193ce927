package cli

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/auth"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/terminal"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// errEmptyToken is returned when 'token set' receives nothing.
var errEmptyToken = errors.New("token is empty")

// secretReader reads a value without echoing it.
type secretReader interface {
	ReadSecret(prompt string) (string, error)
}

// newSecretReader returns the reader 'token set' prompts with.
var newSecretReader = func(cmd *cobra.Command) secretReader {
	return terminal.NewPrompter(os.Stdin, cmd.OutOrStdout())
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the application API token",
	Long: `Manage the bearer token drivelink sends to the application server.

The token can also come from DRIVELINK_TOKEN, or from a file named by
api.token_file or DRIVELINK_TOKEN_FILE which is re-read when it changes.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Save the API token",
	Long: `Save the API token to the config file. Without an argument the token
is read from the terminal without echo.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenSet,
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured API token",
	RunE:  runTokenShow,
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved API token",
	RunE:  runTokenClear,
}

func init() {
	tokenShowCmd.Flags().Bool("reveal", false, "Print the full token")
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenShowCmd)
	tokenCmd.AddCommand(tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		secret, err := newSecretReader(cmd).ReadSecret(msg(i18n.KeyCLITokenPrompt))
		if err != nil {
			return err
		}
		token = secret
	}
	if token == "" {
		return errEmptyToken
	}

	if err := settingsService.Set(domain.KeyAPIToken, token); err != nil {
		return err
	}
	logger.Debug("token: saved %s", logger.Redact(token))
	cmd.Println(msg(i18n.KeyCLITokenSaved, settingsService.Path()))
	return nil
}

func runTokenShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	if settings.API.Token == "" {
		if settings.API.TokenFile != "" {
			cmd.Printf("Token file: %s\n", settings.API.TokenFile)
			return nil
		}
		cmd.Println(msg(i18n.KeyCLITokenNone))
		return nil
	}

	reveal, _ := cmd.Flags().GetBool("reveal")
	if reveal {
		cmd.Printf("Token:   %s\n", settings.API.Token)
	} else {
		cmd.Printf("Token:   %s\n", logger.Redact(settings.API.Token))
	}
	if exp, ok := auth.Expiry(settings.API.Token); ok {
		state := "valid"
		if !time.Now().Before(exp) {
			state = "expired"
		}
		cmd.Printf("Expires: %s (%s)\n", exp.Format(time.RFC3339), state)
	}
	return nil
}

func runTokenClear(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Unset(domain.KeyAPIToken); err != nil {
		return err
	}
	cmd.Println(msg(i18n.KeyCLITokenCleared))
	return nil
}
