// Package storage publishes finished reports to S3-compatible object storage.
package storage

import (
	"context"
	_ "crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aerovista-us/echovalentine/internal/config"
	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/opencontainers/go-digest"
	"go.uber.org/zap"
)

// objectAPI is the subset of the S3 client used for uploads
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads report files to a bucket
type Publisher struct {
	api    objectAPI
	bucket string
	prefix string
	logger *zap.Logger
}

// NewPublisher builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewPublisher(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 5 * time.Minute}),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return newPublisher(client, cfg.Bucket, cfg.Prefix, logger), nil
}

func newPublisher(api objectAPI, bucket, prefix string, logger *zap.Logger) *Publisher {
	return &Publisher{
		api:    api,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// ObjectKey returns <prefix>/<root>/<file> with empty parts omitted
func ObjectKey(prefix, rootName, fileName string) string {
	var parts []string
	for _, p := range []string{strings.Trim(prefix, "/"), rootName, fileName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return path.Join(parts...)
}

// Publish uploads the report at reportPath and returns its s3:// URI
func (p *Publisher) Publish(ctx context.Context, reportPath string, run *models.RunContext) (string, error) {
	f, err := os.Open(reportPath)
	if err != nil {
		return "", fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat report: %w", err)
	}

	d, err := digest.SHA256.FromReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to hash report: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	checksum, err := encodeSHA256(d.Encoded())
	if err != nil {
		return "", err
	}

	rootName := ""
	if run != nil {
		rootName = run.RootName
	}
	key := ObjectKey(p.prefix, rootName, filepath.Base(reportPath))
	size := info.Size()

	input := &s3.PutObjectInput{
		Bucket:            aws.String(p.bucket),
		Key:               aws.String(key),
		Body:              f,
		ContentLength:     aws.Int64(size),
		ContentType:       aws.String(contentType(reportPath)),
		ChecksumAlgorithm: s3types.ChecksumAlgorithmSha256,
		ChecksumSHA256:    aws.String(checksum),
		Metadata: map[string]string{
			"sha256": d.Encoded(),
		},
	}
	if run != nil {
		input.Metadata["scan-id"] = run.ScanID.String()
		input.Metadata["host"] = run.Hostname
	}

	if _, err := p.api.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload report to s3://%s/%s: %w", p.bucket, key, err)
	}

	uri := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	p.logger.Info("Report published", zap.String("uri", uri), zap.Int64("size", size))
	return uri, nil
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return "application/gzip"
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	default:
		return "text/csv"
	}
}

func encodeSHA256(hexDigest string) (string, error) {
	if hexDigest == "" {
		return "", errors.New("sha256 digest required")
	}
	raw, err := hex.DecodeString(hexDigest)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
