// Package drive checks provisioned channel folders on Google Drive.
package drive

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/drivelink-cli/internal/connectors/google"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
)

// Ensure Inspector implements the interface.
var _ driven.FolderInspector = (*Inspector)(nil)

// folderFields is the partial response requested for each folder.
var folderFields = []googleapi.Field{"id", "name", "mimeType", "parents", "trashed", "webViewLink"}

// Inspector reads folder metadata from Google Drive.
type Inspector struct {
	svc     *drive.Service
	limiter *google.RateLimiter
}

// NewInspector creates an inspector over an existing Drive service.
// A nil limiter uses the Drive defaults.
func NewInspector(svc *drive.Service, limiter *google.RateLimiter) *Inspector {
	if limiter == nil {
		limiter = google.NewRateLimiter()
	}
	return &Inspector{svc: svc, limiter: limiter}
}

// Inspect fetches both folders. Missing folders are reported as errors
// wrapping google.ErrNotFound.
func (i *Inspector) Inspect(ctx context.Context, folders domain.ProvisionedFolders) (*domain.FolderInspection, error) {
	root, err := i.folder(ctx, folders.RootFolderID)
	if err != nil {
		return nil, fmt.Errorf("root folder %s: %w", folders.RootFolderID, err)
	}
	archive, err := i.folder(ctx, folders.ArchiveFolderID)
	if err != nil {
		return nil, fmt.Errorf("archive folder %s: %w", folders.ArchiveFolderID, err)
	}

	inspection := &domain.FolderInspection{Root: root, Archive: archive}
	logger.Debug("drive inspection root=%s archive=%s healthy=%t", root.ID, archive.ID, inspection.Healthy())
	return inspection, nil
}

func (i *Inspector) folder(ctx context.Context, id string) (domain.DriveFolder, error) {
	if err := i.limiter.Wait(ctx); err != nil {
		return domain.DriveFolder{}, err
	}

	file, err := i.svc.Files.Get(id).
		Fields(folderFields...).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		if google.IsRateLimited(err) {
			i.limiter.RecordRateLimitError(google.RetryAfter(err))
		}
		return domain.DriveFolder{}, wrap(err)
	}

	return domain.DriveFolder{
		ID:          file.Id,
		Name:        file.Name,
		MimeType:    file.MimeType,
		Parents:     file.Parents,
		Trashed:     file.Trashed,
		WebViewLink: file.WebViewLink,
	}, nil
}

// wrap keeps the Google error message while exposing the sentinel.
func wrap(err error) error {
	sentinel := google.WrapError(err)
	if errors.Is(sentinel, err) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
