package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aerovista-us/echovalentine/internal/config"
	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, f.err
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		prefix, root, file string
		want               string
	}{
		{"inventory", "projects", "r.csv", "inventory/projects/r.csv"},
		{"/inventory/", "projects", "r.csv", "inventory/projects/r.csv"},
		{"", "projects", "r.csv", "projects/r.csv"},
		{"inventory", "", "r.csv", "inventory/r.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ObjectKey(tt.prefix, tt.root, tt.file))
	}
}

func TestPublish(t *testing.T) {
	report := filepath.Join(t.TempDir(), "projects_inventory_20240102_030405.csv")
	require.NoError(t, os.WriteFile(report, []byte("hello"), 0644))

	api := &fakeAPI{}
	p := newPublisher(api, "reports", "inventory/", zap.NewNop())
	run := &models.RunContext{ScanID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), RootName: "projects", Hostname: "h"}

	uri, err := p.Publish(context.Background(), report, run)
	require.NoError(t, err)

	assert.Equal(t, "s3://reports/inventory/projects/projects_inventory_20240102_030405.csv", uri)
	require.NotNil(t, api.input)
	assert.Equal(t, "reports", aws.ToString(api.input.Bucket))
	assert.Equal(t, int64(5), aws.ToInt64(api.input.ContentLength))
	assert.Equal(t, "text/csv", aws.ToString(api.input.ContentType))
	assert.Equal(t, []byte("hello"), api.body)
	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", api.input.Metadata["sha256"])
	assert.Equal(t, "LPJNul+wow4m6DsqxbninhsWHlwfp0JecwQzYpOLmCQ=", aws.ToString(api.input.ChecksumSHA256))
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", api.input.Metadata["scan-id"])
}

func TestPublish_UploadError(t *testing.T) {
	report := filepath.Join(t.TempDir(), "r.csv.gz")
	require.NoError(t, os.WriteFile(report, []byte("x"), 0644))

	api := &fakeAPI{err: errors.New("denied")}
	p := newPublisher(api, "reports", "", zap.NewNop())

	_, err := p.Publish(context.Background(), report, nil)
	assert.Error(t, err)
	assert.Equal(t, "application/gzip", aws.ToString(api.input.ContentType))
}

func TestPublish_MissingReport(t *testing.T) {
	p := newPublisher(&fakeAPI{}, "reports", "", zap.NewNop())
	_, err := p.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), nil)
	assert.Error(t, err)
}

func TestNewPublisher_RequiresBucket(t *testing.T) {
	_, err := NewPublisher(context.Background(), config.S3Config{}, zap.NewNop())
	assert.Error(t, err)
}
