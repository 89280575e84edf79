package service

import (
	"context"
	"fmt"
	"log"
	"os"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"tee-factory/models"
)

// DriveHosting uploads design files to a Google Drive folder and shares them
// publicly so the print provider can fetch them by URL.
// Implements HostingProvider.
type DriveHosting struct {
	client   *drive.Service
	folderID string
}

// Ensure DriveHosting implements HostingProvider
var _ HostingProvider = (*DriveHosting)(nil)

// NewDriveHosting creates a DriveHosting instance.
// credentialsPath should be the path to the Service Account JSON file;
// option.WithCredentialsFile handles the authentication.
func NewDriveHosting(ctx context.Context, credentialsPath, folderID string) (*DriveHosting, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("%w: DRIVE_CREDENTIALS_FILE is not set", models.ErrConfig)
	}
	if folderID == "" {
		return nil, fmt.Errorf("%w: DRIVE_FOLDER_ID is not set", models.ErrConfig)
	}

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveHosting{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Name returns the provider identifier.
func (h *DriveHosting) Name() string { return "drive" }

// Host uploads the file into the configured folder, grants anyone-with-link
// read access, and returns the direct-download URL.
func (h *DriveHosting) Host(ctx context.Context, localPath, filename string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open design file: %w", err)
	}
	defer f.Close()

	file, err := h.client.Files.Create(&drive.File{
		Name:    filename,
		Parents: []string{h.folderID},
	}).Media(f).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", &models.TransientError{Err: fmt.Errorf("drive upload failed: %w", err)}
	}

	_, err = h.client.Permissions.Create(file.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", &models.TransientError{Err: fmt.Errorf("drive permission failed: %w", err)}
	}

	// Direct-download URL the print provider can fetch.
	url := fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id)
	log.Printf("☁️  Uploaded to Drive: %s", url)
	return url, nil
}
