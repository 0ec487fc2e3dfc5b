package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutriday/backend/config"
)

// photoURLTTL bounds how long an uploaded photo link stays fetchable. The
// bucket stays private; clients only ever see presigned URLs.
const photoURLTTL = 24 * time.Hour

// PhotoService stores meal photos in S3. The same base64 payload the manual
// entry analysis sends to the AI can be archived here.
type PhotoService struct {
	s3Config *config.S3Config
}

// NewPhotoService creates a new PhotoService instance
func NewPhotoService(s3Config *config.S3Config) *PhotoService {
	return &PhotoService{s3Config: s3Config}
}

// UploadMealPhoto decodes a base64 JPEG, uploads it to S3 and returns a
// presigned URL for viewing it.
func (s *PhotoService) UploadMealPhoto(ctx context.Context, imageBase64 string) (string, error) {
	imageData, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	fileName := fmt.Sprintf("meal-photos/%s.jpg", uuid.New().String())

	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url, err := s.s3Config.GeneratePresignedURL(ctx, fileName, photoURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign photo URL: %w", err)
	}

	log.Printf("[PhotoService] Uploaded meal photo %s", fileName)
	return url, nil
}
