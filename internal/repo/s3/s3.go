package s3

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/JMURv/taskboard/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type UploadFileRequest struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type Storage struct {
	cli      *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

func New(conf config.Config) *Storage {
	cli, err := minio.New(
		conf.S3.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(conf.S3.AccessKey, conf.S3.SecretKey, ""),
			Secure: conf.S3.UseSSL,
		},
	)
	if err != nil {
		zap.L().Fatal("failed to connect to object storage", zap.Error(err))
	}

	ctx := context.Background()
	exists, err := cli.BucketExists(ctx, conf.S3.Bucket)
	if err != nil {
		zap.L().Fatal("failed to check bucket", zap.Error(err))
	}

	if !exists {
		if err = cli.MakeBucket(ctx, conf.S3.Bucket, minio.MakeBucketOptions{}); err != nil {
			zap.L().Fatal("failed to create bucket", zap.Error(err))
		}
	}

	return &Storage{
		cli:      cli,
		endpoint: conf.S3.Endpoint,
		bucket:   conf.S3.Bucket,
		useSSL:   conf.S3.UseSSL,
	}
}

func (s *Storage) Upload(ctx context.Context, req *UploadFileRequest) (string, error) {
	name := uuid.NewString() + filepath.Ext(req.Name)

	_, err := s.cli.PutObject(
		ctx, s.bucket, name, req.Reader, req.Size, minio.PutObjectOptions{
			ContentType: req.ContentType,
		},
	)
	if err != nil {
		return "", err
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, name), nil
}
