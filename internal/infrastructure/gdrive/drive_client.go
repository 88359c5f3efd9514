package gdrive

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Cowboybot7/Google-Drive-CB/internal/domain/entity"
	apperrors "github.com/Cowboybot7/Google-Drive-CB/pkg/errors"
	"github.com/Cowboybot7/Google-Drive-CB/pkg/logger"
)

const viewURLTemplate = "https://drive.google.com/file/d/%s/view"

// 8 MiB chunks keep the transfer resumable without buffering whole files.
const uploadChunkSize = 8 << 20

// DriveClient wraps the Drive API for object creation and public sharing.
type DriveClient struct {
	service  *drive.Service
	folderID string
}

// NewDriveClient builds a Drive client from a service account credential,
// scoped to drive.file only. When folderID is set every upload is filed into
// that folder, otherwise objects land in the account's root.
func NewDriveClient(ctx context.Context, credentialJSON []byte, folderID string) (*DriveClient, error) {
	jwtConfig, err := google.JWTConfigFromJSON(credentialJSON, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service credential: %w", err)
	}

	service, err := drive.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveClient{service: service, folderID: folderID}, nil
}

func newWithService(service *drive.Service, folderID string) *DriveClient {
	return &DriveClient{service: service, folderID: folderID}
}

// UploadFile streams the local file to Drive under the given display name,
// grants anyone-with-the-link read access and returns the public view URL.
// Creation and the permission grant are two calls: a failure between them
// leaves a private object behind, with no rollback.
func (c *DriveClient) UploadFile(ctx context.Context, path, name string) (*entity.UploadedObject, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("failed to open %s: %v", path, err), err)
	}
	defer file.Close()

	meta := &drive.File{Name: name}
	if c.folderID != "" {
		meta.Parents = []string{c.folderID}
	}

	created, err := c.service.Files.Create(meta).
		Media(file, googleapi.ChunkSize(uploadChunkSize)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return nil, normalizeError(err)
	}
	logger.Info("File '%s' uploaded to Drive with ID: %s", name, created.Id)

	permission := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := c.service.Permissions.Create(created.Id, permission).Context(ctx).Do(); err != nil {
		return nil, normalizeError(err)
	}

	return &entity.UploadedObject{ID: created.Id, URL: ViewURL(created.Id)}, nil
}

// ViewURL derives the shareable link for an uploaded object.
func ViewURL(id string) string {
	return fmt.Sprintf(viewURLTemplate, id)
}

func normalizeError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		logger.Error("Google Drive API error: %v", apiErr)
		return apperrors.UploadFailed(apiErr.Code, reason(apiErr), err)
	}
	logger.Error("Upload error: %v", err)
	return apperrors.UploadFailed(0, err.Error(), err)
}

func reason(apiErr *googleapi.Error) string {
	if len(apiErr.Errors) > 0 && apiErr.Errors[0].Reason != "" {
		return apiErr.Errors[0].Reason
	}
	return apiErr.Message
}
