package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// Ensure FolderService implements the interface.
var _ driving.FolderService = (*FolderService)(nil)

// ErrFolderIDsRequired is returned by Verify when either folder ID is empty.
var ErrFolderIDsRequired = errors.New("root and archive folder IDs are required")

// FolderService provisions channel folders through the server and checks
// them on Google Drive.
type FolderService struct {
	api       driven.FolderAPI
	status    driven.IntegrationsStatusProvider
	inspector driven.FolderInspector
}

// NewFolderService creates a new folder service. The inspector may be nil.
func NewFolderService(
	api driven.FolderAPI,
	status driven.IntegrationsStatusProvider,
	inspector driven.FolderInspector,
) *FolderService {
	return &FolderService{
		api:       api,
		status:    status,
		inspector: inspector,
	}
}

// Generate validates the request and asks the server for the folder pair.
func (s *FolderService) Generate(ctx context.Context, req domain.FolderRequest) (*domain.ProvisionedFolders, error) {
	if s.status == nil || s.api == nil {
		return nil, domain.ErrNotConfigured
	}

	drive := s.status.GoogleDrive(ctx)
	if drive.Loading {
		return nil, domain.ErrOperationInProgress
	}
	if !drive.Connected {
		return nil, &domain.ValidationError{Reason: domain.ReasonDriveNotConnected}
	}

	name := domain.NormaliseChannelName(req.ChannelName)
	if name == "" {
		return nil, &domain.ValidationError{Reason: domain.ReasonEmptyChannelName}
	}

	channelUUID := strings.TrimSpace(req.ChannelUUID)
	if channelUUID != "" {
		if _, err := uuid.Parse(channelUUID); err != nil {
			return nil, &domain.ValidationError{Reason: domain.ReasonInvalidChannelUUID, Detail: channelUUID}
		}
	}

	logger.Debug("generating folders for channel %q", name)
	result, err := s.api.GenerateFolders(ctx, domain.FolderRequest{
		ChannelName: name,
		ChannelUUID: channelUUID,
	})
	if err != nil {
		return nil, fmt.Errorf("generate folders: %w", err)
	}

	if !result.Complete() {
		code := domain.Code(result.Error)
		if code == "" {
			code = domain.CodeFailedToGenerateFolders
		}
		message := result.Message
		if message == "" {
			message = result.Error
		}
		return nil, &domain.ServerError{Code: code, Message: message}
	}

	folders := result.Folders()
	logger.Debug("folders created: root=%s archive=%s", folders.RootFolderID, folders.ArchiveFolderID)
	return &folders, nil
}

// Verify inspects a folder pair on Google Drive.
func (s *FolderService) Verify(ctx context.Context, folders domain.ProvisionedFolders) (*domain.FolderInspection, error) {
	if s.inspector == nil {
		return nil, domain.ErrNotConfigured
	}
	if folders.RootFolderID == "" || folders.ArchiveFolderID == "" {
		return nil, ErrFolderIDsRequired
	}

	inspection, err := s.inspector.Inspect(ctx, folders)
	if err != nil {
		return nil, fmt.Errorf("inspect folders: %w", err)
	}
	return inspection, nil
}
