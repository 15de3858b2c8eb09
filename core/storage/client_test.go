package storage_test

import (
	"context"
	"errors"
	"testing"

	"indy-builder/core/storage"
	"indy-builder/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "indy-reports",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "reports").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(ctx, m, "reports", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "reports").Return(false, nil)
		m.On("MakeBucket", ctx, "reports", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(ctx, m, "reports", "eu-west-1"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "reports").Return(false, errors.New("connection refused"))

		err := storage.EnsureBucket(ctx, m, "reports", "")
		assert.ErrorContains(t, err, "failed to check bucket reports")
	})

	t.Run("CreateFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "reports").Return(false, nil)
		m.On("MakeBucket", ctx, "reports", mock.Anything).Return(errors.New("denied"))

		err := storage.EnsureBucket(ctx, m, "reports", "")
		assert.ErrorContains(t, err, "failed to create bucket reports")
	})
}
