package domain

import "strings"

// IntegrationStatus reflects the server-side Google Drive connection state.
type IntegrationStatus struct {
	// Connected is true when the server holds a usable Drive authorization.
	Connected bool `json:"connected"`
	// Email is the connected Google account, when the server reports it.
	Email string `json:"email,omitempty"`
}

// AuthURL carries the provider authorization URL issued by the server.
type AuthURL struct {
	AuthURL string `json:"authUrl"`
}

// ConfirmRequest is the body posted to the OAuth callback endpoint.
type ConfirmRequest struct {
	Code string `json:"code"`
}

// FolderRequest asks the server to provision Drive folders for a channel.
type FolderRequest struct {
	ChannelName string `json:"channelName"`
	ChannelUUID string `json:"channelUuid,omitempty"`
}

// FolderGenerationResult is the server's answer to a FolderRequest.
type FolderGenerationResult struct {
	Success         bool   `json:"success"`
	RootFolderID    string `json:"rootFolderId,omitempty"`
	ArchiveFolderID string `json:"archiveFolderId,omitempty"`
	Message         string `json:"message,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Complete reports whether the result carries both folder identifiers.
func (r FolderGenerationResult) Complete() bool {
	return r.Success && r.RootFolderID != "" && r.ArchiveFolderID != ""
}

// Folders returns the provisioned folder pair.
func (r FolderGenerationResult) Folders() ProvisionedFolders {
	return ProvisionedFolders{
		RootFolderID:    r.RootFolderID,
		ArchiveFolderID: r.ArchiveFolderID,
	}
}

// ProvisionedFolders is the folder pair handed to a wizard's completion callback.
type ProvisionedFolders struct {
	RootFolderID    string `json:"rootFolderId"`
	ArchiveFolderID string `json:"archiveFolderId"`
}

// ErrorEnvelope is the JSON body the server returns on non-2xx responses.
type ErrorEnvelope struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ProviderStatus is a read-only view of one integration as seen by the
// application's shared integrations status source.
type ProviderStatus struct {
	Connected bool
	Loading   bool
}

// NormaliseChannelName trims surrounding whitespace from a channel name.
func NormaliseChannelName(name string) string {
	return strings.TrimSpace(name)
}

// FolderMimeType is the Google Drive MIME type of a folder.
const FolderMimeType = "application/vnd.google-apps.folder"

// DriveFolder describes one folder as reported by Google Drive.
type DriveFolder struct {
	ID          string
	Name        string
	MimeType    string
	Parents     []string
	Trashed     bool
	WebViewLink string
}

// IsFolder reports whether the item is an untrashed folder.
func (f DriveFolder) IsFolder() bool {
	return f.MimeType == FolderMimeType && !f.Trashed
}

// FolderInspection is the outcome of checking a provisioned folder pair.
type FolderInspection struct {
	Root    DriveFolder
	Archive DriveFolder
}

// ArchiveUnderRoot reports whether the archive folder is a direct child of root.
func (i FolderInspection) ArchiveUnderRoot() bool {
	for _, p := range i.Archive.Parents {
		if p == i.Root.ID {
			return true
		}
	}
	return false
}

// Healthy reports whether both folders exist and are correctly nested.
func (i FolderInspection) Healthy() bool {
	return i.Root.IsFolder() && i.Archive.IsFolder() && i.ArchiveUnderRoot()
}
