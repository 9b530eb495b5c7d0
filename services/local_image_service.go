package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/fixlink/fixlink-api/utils"
)

// LocalImageService implements ImageService on the local filesystem. Used
// in development when no S3 bucket is configured; images are served back
// through GET /api/v1/uploads/:filename.
type LocalImageService struct {
	uploadDir string
}

// InitLocalImageService initializes the image service with local storage
func InitLocalImageService(uploadDir string) ImageService {
	if uploadDir == "" {
		uploadDir = utils.UploadDir
	}
	imageServiceInstance = &LocalImageService{uploadDir: uploadDir}
	return imageServiceInstance
}

// UploadImage validates the file and writes it under the upload directory
func (s *LocalImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	filename, err := utils.SaveUploadedFile(fileHeader, s.uploadDir)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return filename, nil
}

// GetImageURL returns the relative serving path for a stored image
func (s *LocalImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}
	return fmt.Sprintf("/api/v1/uploads/%s", imageKey), nil
}

// DeleteImage removes a stored image from the upload directory
func (s *LocalImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	fullPath := filepath.Join(s.uploadDir, filepath.Base(imageKey))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
