package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kendall-kelly/snapfix-api/utils"
)

const (
	// PhotoKeyPrefix is where booking photos live in the bucket
	PhotoKeyPrefix = "bookings/photos"

	// PhotoURLTTL bounds how long a presigned photo URL stays valid
	PhotoURLTTL = time.Hour
)

// ImageService stores booking photos and hands back a URL the client can embed
type ImageService interface {
	// UploadImage validates and stores an image file, returns the storage key
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL returns a URL for a stored key; an empty key yields ""
	GetImageURL(ctx context.Context, imageKey string) (string, error)
}

var imageServiceInstance ImageService

// GetImageService returns the configured image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// S3ImageService keeps photos in an object store under PhotoKeyPrefix
type S3ImageService struct {
	store ObjectStore
}

// NewS3ImageService wraps an object store
func NewS3ImageService(store ObjectStore) *S3ImageService {
	return &S3ImageService{store: store}
}

// PhotoKey builds a collision-free key keeping the original extension
func PhotoKey(filename string) string {
	return fmt.Sprintf("%s/%s%s", PhotoKeyPrefix, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}

// UploadImage validates the file and streams it to the store
func (s *S3ImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	key := PhotoKey(fileHeader.Filename)
	if err := s.store.Put(ctx, key, utils.ContentTypeFor(fileHeader.Filename), file, fileHeader.Size); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return key, nil
}

// GetImageURL presigns a GET for imageKey
func (s *S3ImageService) GetImageURL(ctx context.Context, imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.store.PresignGet(ctx, imageKey, PhotoURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}
	return url, nil
}

// LocalImageService keeps photos on local disk, served by GET /api/uploads/:filename
type LocalImageService struct {
	dir string
}

// NewLocalImageService stores files under dir
func NewLocalImageService(dir string) *LocalImageService {
	return &LocalImageService{dir: dir}
}

// UploadImage validates and saves an image file under the upload directory
func (s *LocalImageService) UploadImage(_ context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	filename, err := utils.SaveUploadedFile(fileHeader, s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return filename, nil
}

// GetImageURL returns the API path serving the stored file
func (s *LocalImageService) GetImageURL(_ context.Context, imageKey string) (string, error) {
	return utils.GetImageURL(imageKey), nil
}
