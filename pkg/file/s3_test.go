package file_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/file"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func newS3Store(t *testing.T, client file.S3Client, prefix string) *file.S3Store {
	t.Helper()
	store, err := file.NewS3Store(context.Background(), file.S3Config{
		Bucket: "test-bucket",
		Region: "us-east-1",
		Prefix: prefix,
	}, file.WithS3Client(client))
	require.NoError(t, err)
	return store
}

func keyIs(key string) any {
	return mock.MatchedBy(func(params *s3.HeadObjectInput) bool {
		return aws.ToString(params.Bucket) == "test-bucket" && aws.ToString(params.Key) == key
	})
}

func TestNewS3Store(t *testing.T) {
	t.Parallel()

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewS3Store(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewS3Store(context.Background(), file.S3Config{Bucket: "b"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("with static credentials", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewS3Store(context.Background(), file.S3Config{
			Bucket:      "b",
			Region:      "us-east-1",
			AccessKeyID: "key",
			SecretKey:   "secret",
			Endpoint:    "http://localhost:9000",
		})
		require.NoError(t, err)
		assert.NotNil(t, store)
	})
}

func TestS3Store_Stat(t *testing.T) {
	t.Parallel()

	t.Run("object metadata", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, keyIs("tenant/docs/a.pdf"), mock.Anything).
			Return(&s3.HeadObjectOutput{
				ContentLength: aws.Int64(2048),
				ContentType:   aws.String("application/pdf"),
			}, nil)

		info, err := newS3Store(t, client, "tenant").Stat(context.Background(), "/docs/a.pdf")
		require.NoError(t, err)
		assert.Equal(t, "a.pdf", info.Filename)
		assert.Equal(t, int64(2048), info.Size)
		assert.True(t, info.IsPDF())
		client.AssertExpectations(t)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)

		_, err := newS3Store(t, client, "").Stat(context.Background(), "../../etc/passwd")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		client.AssertNotCalled(t, "HeadObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3Store_Exists(t *testing.T) {
	t.Parallel()

	t.Run("object exists", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, keyIs("uploads/test.txt"), mock.Anything).
			Return(&s3.HeadObjectOutput{}, nil)

		ok, err := newS3Store(t, client, "").Exists(context.Background(), "uploads/test.txt")
		require.NoError(t, err)
		assert.True(t, ok)
		client.AssertExpectations(t)
	})

	t.Run("object not found", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NotFound{})

		ok, err := newS3Store(t, client, "").Exists(context.Background(), "uploads/missing.txt")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("access denied is an error", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

		ok, err := newS3Store(t, client, "").Exists(context.Background(), "uploads/secret.txt")
		assert.False(t, ok)
		assert.ErrorIs(t, err, file.ErrAccessDenied)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.Canceled)

		_, err := newS3Store(t, client, "").Exists(context.Background(), "uploads/test.txt")
		assert.ErrorIs(t, err, file.ErrOperationCanceled)
	})

	t.Run("unclassified failure", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		boom := errors.New("connection reset")
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

		_, err := newS3Store(t, client, "").Exists(context.Background(), "uploads/test.txt")
		assert.ErrorIs(t, err, boom)
	})
}
