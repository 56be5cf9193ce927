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

// errUnhealthyFolders is returned by 'folders verify' when the check fails.
var errUnhealthyFolders = errors.New("folder check failed")

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Manage channel folders on Google Drive",
	Long: `Create and check the Google Drive folders a channel uploads into.

Each channel gets a root folder and an archive subfolder for uploaded videos.`,
}

var foldersGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create the folders for a channel",
	Long: `Ask the server to create the root and archive folders for a channel.
Google Drive must be connected first.

Examples:
  drivelink folders generate --channel-name Cooking
  drivelink folders generate --channel-name Cooking --channel-uuid 6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b`,
	RunE: runFoldersGenerate,
}

var foldersVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a folder pair on Google Drive",
	Long: `Check on Google Drive that both folders exist, are not trashed, and
that the archive folder sits directly under the root folder.

Requires a Google access token with Drive read scope in drive.access_token
or DRIVELINK_DRIVE_TOKEN.`,
	RunE: runFoldersVerify,
}

func init() {
	foldersGenerateCmd.Flags().String("channel-name", "", "Channel name (required)")
	foldersGenerateCmd.Flags().String("channel-uuid", "", "Channel UUID")
	foldersGenerateCmd.Flags().Bool("json", false, "Output as JSON")

	foldersVerifyCmd.Flags().String("root", "", "Root folder ID (required)")
	foldersVerifyCmd.Flags().String("archive", "", "Archive folder ID (required)")
	foldersVerifyCmd.Flags().Bool("json", false, "Output as JSON")

	foldersCmd.AddCommand(foldersGenerateCmd)
	foldersCmd.AddCommand(foldersVerifyCmd)
	rootCmd.AddCommand(foldersCmd)
}

func runFoldersGenerate(cmd *cobra.Command, _ []string) error {
	if flows == nil {
		return errors.New("integration flows not configured")
	}

	name, _ := cmd.Flags().GetString("channel-name")
	uuid, _ := cmd.Flags().GetString("channel-uuid")
	asJSON, _ := cmd.Flags().GetBool("json")
	ctx := cmd.Context()

	if refreshStatus != nil {
		if err := refreshStatus(ctx); err != nil {
			return describe(err, services.KeyStatusLoadFailed)
		}
	}

	completed := make(chan domain.ProvisionedFolders, 1)
	wizard := flows.FolderWizard(name, uuid, func(folders domain.ProvisionedFolders) {
		completed <- folders
	})
	defer wizard.Close()

	if snap := wizard.Snapshot(ctx); snap.State == domain.WizardBlocked {
		return &userError{
			text: msg(i18n.KeyWizardBlocked) + " " + msg(i18n.KeyWizardBlockedHint),
			err:  &domain.ValidationError{Reason: domain.ReasonDriveNotConnected},
		}
	}

	if err := wizard.Generate(ctx); err != nil {
		if snap := wizard.Snapshot(ctx); snap.Error != "" {
			return &userError{text: snap.Error, err: err}
		}
		return describe(err, services.KeyFoldersFailed)
	}

	snap := wizard.Snapshot(ctx)
	if !asJSON && snap.Folders != nil {
		cmd.Println(msg(i18n.KeyWizardSuccess))
		cmd.Println(msg(i18n.KeyWizardRootFolder, snap.Folders.RootFolderID))
		cmd.Println(msg(i18n.KeyWizardArchiveFolder, snap.Folders.ArchiveFolderID))
		cmd.Println(msg(i18n.KeyWizardFinishing))
	}

	var folders domain.ProvisionedFolders
	select {
	case folders = <-completed:
	case <-ctx.Done():
		return ctx.Err()
	}

	if asJSON {
		data, err := json.MarshalIndent(folders, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal folders: %w", err)
		}
		cmd.Println(string(data))
	}
	return nil
}

func runFoldersVerify(cmd *cobra.Command, _ []string) error {
	if folderService == nil {
		return errors.New("folder service not configured")
	}

	root, _ := cmd.Flags().GetString("root")
	archive, _ := cmd.Flags().GetString("archive")
	asJSON, _ := cmd.Flags().GetBool("json")

	inspection, err := folderService.Verify(cmd.Context(), domain.ProvisionedFolders{
		RootFolderID:    root,
		ArchiveFolderID: archive,
	})
	if errors.Is(err, domain.ErrNotConfigured) {
		return fmt.Errorf("google drive access is not configured, set %s: %w", domain.KeyDriveToken, err)
	}
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(struct {
			*domain.FolderInspection
			Healthy bool `json:"healthy"`
		}{inspection, inspection.Healthy()}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal inspection: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printFolder(cmd, msg(i18n.KeyWizardRootFolder, inspection.Root.ID), inspection.Root)
		printFolder(cmd, msg(i18n.KeyWizardArchiveFolder, inspection.Archive.ID), inspection.Archive)
	}

	if !inspection.Healthy() {
		return &userError{text: msg(i18n.KeyWizardVerifyBad), err: errUnhealthyFolders}
	}
	if !asJSON {
		cmd.Println(msg(i18n.KeyWizardVerifyOK))
	}
	return nil
}

func printFolder(cmd *cobra.Command, title string, f domain.DriveFolder) {
	cmd.Println(title)
	cmd.Printf("  Name:    %s\n", f.Name)
	cmd.Printf("  Folder:  %t\n", f.IsFolder())
	if f.Trashed {
		cmd.Println("  Trashed: true")
	}
	if f.WebViewLink != "" {
		cmd.Printf("  Link:    %s\n", f.WebViewLink)
	}
}
