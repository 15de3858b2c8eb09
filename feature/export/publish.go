package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"indy-builder/core/storage"

	"github.com/minio/minio-go/v7"
)

var contentTypes = map[string]string{
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Publish uploads a written report to the configured bucket under its prefix,
// creating the bucket first when needed. It returns the object name.
func Publish(ctx context.Context, client storage.Client, cfg storage.Config, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open report %s: %w", localPath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat report %s: %w", localPath, err)
	}

	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return "", err
	}

	objectName := path.Join(cfg.Prefix, filepath.Base(localPath))
	contentType := contentTypes[filepath.Ext(localPath)]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := client.PutObject(ctx, cfg.Bucket, objectName, file, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return objectName, nil
}
