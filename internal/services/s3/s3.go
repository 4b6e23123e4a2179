// Package s3service provides S3 operations for prospect uploads and lead exports
package s3service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appConfig "github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/config"
	"github.com/AmanSuryavanshi-1/Aviators-Training-Centre-sub006/internal/utils"
)

// Service handles S3 operations
type Service struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
}

// PresignedURLResult contains the presigned URL details
type PresignedURLResult struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewService creates a new S3 service
func NewService(ctx context.Context) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	appCfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	presigner := s3.NewPresignClient(client)

	return &Service{
		client:     client,
		presigner:  presigner,
		bucketName: appCfg.S3Bucket,
	}, nil
}

// GeneratePresignedUploadURL creates a presigned URL for uploading prospect CSVs
func (s *Service) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiryMinutes int) (*PresignedURLResult, error) {
	if expiryMinutes <= 0 {
		expiryMinutes = 15 // Default 15 minutes
	}

	expiry := time.Duration(expiryMinutes) * time.Minute

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presignedReq, err := s.presigner.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		utils.GetLogger().Error("Failed to generate presigned URL",
			zap.String("bucket", s.bucketName),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	utils.GetLogger().Info("Generated presigned upload URL",
		zap.String("bucket", s.bucketName),
		zap.String("key", key),
		zap.Int("expiry_minutes", expiryMinutes),
	)

	return &PresignedURLResult{
		URL:       presignedReq.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// GeneratePresignedDownloadURL creates a presigned URL for downloading exports
func (s *Service) GeneratePresignedDownloadURL(ctx context.Context, key string, expiryMinutes int) (*PresignedURLResult, error) {
	if expiryMinutes <= 0 {
		expiryMinutes = 15
	}

	expiry := time.Duration(expiryMinutes) * time.Minute

	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}

	presignedReq, err := s.presigner.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return &PresignedURLResult{
		URL:       presignedReq.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// DownloadFile downloads a file from S3
func (s *Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}

	result, err := s.client.GetObject(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to download file from S3",
			zap.String("bucket", s.bucketName),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	return data, nil
}

// UploadFile uploads a file to S3
func (s *Service) UploadFile(ctx context.Context, key string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to upload file to S3",
			zap.String("bucket", s.bucketName),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to upload file: %w", err)
	}

	utils.GetLogger().Info("Uploaded file to S3",
		zap.String("bucket", s.bucketName),
		zap.String("key", key),
		zap.Int("size", len(data)),
	)

	return nil
}

// UploadLeadExport uploads a lead export CSV and returns a presigned download URL.
func (s *Service) UploadLeadExport(ctx context.Context, key string, csvContent string, expiryMinutes int) (*PresignedURLResult, error) {
	if err := s.UploadFile(ctx, key, []byte(csvContent), "text/csv"); err != nil {
		return nil, err
	}

	return s.GeneratePresignedDownloadURL(ctx, key, expiryMinutes)
}

// ArchiveFile moves a processed file into the archive prefix.
func (s *Service) ArchiveFile(ctx context.Context, key string) error {
	archiveKey := "processed/" + key
	copySource := s.bucketName + "/" + key

	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucketName),
		CopySource: aws.String(copySource),
		Key:        aws.String(archiveKey),
	})
	if err != nil {
		return fmt.Errorf("failed to copy to archive: %w", err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete original: %w", err)
	}

	utils.GetLogger().Info("Archived processed file",
		zap.String("key", key),
		zap.String("archive_key", archiveKey),
	)

	return nil
}
