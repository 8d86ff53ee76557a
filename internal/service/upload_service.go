package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/haroonchishty/sca-backend/internal/config"
	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

// UploadService issues pre-signed object storage URLs for image uploads.
type UploadService struct {
	presign *s3.PresignClient
	cfg     config.UploadConfig
	logger  *zap.Logger
}

// NewUploadService builds the S3 presign client from the AWS default
// config chain.
func NewUploadService(ctx context.Context, region string, cfg config.UploadConfig, logger *zap.Logger) (*UploadService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &UploadService{presign: s3.NewPresignClient(client), cfg: cfg, logger: logger}, nil
}

// PresignPut returns a pre-signed PUT URL and the object key for the given
// filename and content type.
func (s *UploadService) PresignPut(ctx context.Context, fileName, fileType string) (string, string, error) {
	if fileName == "" {
		return "", "", apperrors.NewValidationError("fileName is required")
	}

	key := s.cfg.KeyPrefix + fileName
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(s.cfg.TTL()))
	if err != nil {
		return "", "", apperrors.NewUpstreamFailure("failed to presign upload", err)
	}
	return req.URL, key, nil
}
