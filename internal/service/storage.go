package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/balanceai/wellness-backend/config"
)

// StorageService archives uploaded scan images in S3.
type StorageService struct {
	s3Config *config.S3Config
}

// NewStorageService creates a new StorageService instance
func NewStorageService(s3Config *config.S3Config) *StorageService {
	return &StorageService{s3Config: s3Config}
}

// scanImageURLTTL bounds how long an archived scan image stays fetchable.
const scanImageURLTTL = 24 * time.Hour

// UploadScanImage uploads image data to S3 and returns a presigned URL for
// the stored object. The bucket stays private.
func (s *StorageService) UploadScanImage(ctx context.Context, imageData []byte, contentType string) (string, error) {
	fileName := fmt.Sprintf("scan-images/%s%s", uuid.New().String(), extensionForContentType(contentType))

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url, err := s.s3Config.GeneratePresignedURL(ctx, fileName, scanImageURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign scan image URL: %w", err)
	}
	log.Printf("[StorageService] Uploaded scan image to S3: %s", fileName)

	return url, nil
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
