package cloudwriter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutter struct {
	mock.Mock
	body []byte
}

func (m *mockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(params.Body)
	m.body = body
	args := m.Called(aws.ToString(params.Bucket), aws.ToString(params.Key))
	return &s3.PutObjectOutput{}, args.Error(0)
}

func TestS3Writer_UploadsBufferOnClose(t *testing.T) {
	putter := new(mockPutter)
	putter.On("PutObject", "fixtures", "meal_order_rows/run=abc/data.parquet").Return(nil).Once()
	factory := NewS3WriterFactoryWithClient(context.Background(), putter)

	w, err := factory.NewWriter("fixtures", "meal_order_rows/run=abc/data.parquet")
	require.NoError(t, err)
	_, err = w.Write([]byte("PAR1"))
	require.NoError(t, err)
	_, err = w.Write([]byte("data"))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Equal(t, "PAR1data", string(putter.body))
	putter.AssertExpectations(t)

	_, err = w.Write([]byte("late"))
	assert.Error(t, err)
}

func TestS3Writer_UploadError(t *testing.T) {
	putter := new(mockPutter)
	putter.On("PutObject", "fixtures", "key").Return(errors.New("access denied")).Once()
	factory := NewS3WriterFactoryWithClient(context.Background(), putter)

	w, err := factory.NewWriter("fixtures", "key")
	require.NoError(t, err)

	err = w.Close()
	assert.ErrorContains(t, err, "access denied")
}

func TestS3WriterFactory_RequiresBucket(t *testing.T) {
	factory := NewS3WriterFactoryWithClient(context.Background(), new(mockPutter))

	_, err := factory.NewWriter("", "key")
	assert.Error(t, err)
}
