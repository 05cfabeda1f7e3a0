package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appconfig "github.com/retailhub/retailhub-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutObjectClient struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutObjectClient) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Storage_PutObject(t *testing.T) {
	fake := &fakePutObjectClient{}
	store := &S3Storage{client: fake, bucket: "retailhub-snapshots"}

	err := store.PutObject(context.Background(), "snapshots/a.json", []byte(`[]`), "application/json")
	require.NoError(t, err)

	assert.Equal(t, "retailhub-snapshots", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "snapshots/a.json", aws.ToString(fake.input.Key))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))
	assert.Equal(t, int64(2), aws.ToInt64(fake.input.ContentLength))
	assert.Equal(t, []byte(`[]`), fake.body)
}

func TestS3Storage_PutObjectError(t *testing.T) {
	cause := errors.New("AccessDenied")
	store := &S3Storage{client: &fakePutObjectClient{err: cause}, bucket: "b"}

	err := store.PutObject(context.Background(), "k", []byte("x"), "text/plain")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "s3://b/k")
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), appconfig.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestNewS3Storage_StaticCredentials(t *testing.T) {
	store, err := NewS3Storage(context.Background(), appconfig.S3Config{
		Region:          "us-east-1",
		Bucket:          "bucket",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Endpoint:        "http://localhost:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "bucket", store.bucket)
}
