package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config describes an S3-compatible bucket that pins what it stores on
// IPFS and reports the CID as object metadata (Filebase and similar).
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Prefix    string
}

// S3API is the part of *s3.Client used by S3Pinner.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// NewS3Client builds a path-style client for cfg.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// cidMetadataKey is the user metadata entry holding the IPFS CID.
const cidMetadataKey = "cid"

type S3Pinner struct {
	api    S3API
	bucket string
	prefix string
}

var _ Pinner = (*S3Pinner)(nil)

func NewS3Pinner(api S3API, bucket, prefix string) *S3Pinner {
	return &S3Pinner{api: api, bucket: bucket, prefix: prefix}
}

func (p *S3Pinner) objectKey(name string) string {
	return path.Join(p.prefix, uuid.NewString()+"-"+path.Base(PinName(name)))
}

func (p *S3Pinner) PinFile(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", uploadFailed("pin file", err)
	}

	cid, err := p.put(ctx, p.objectKey(name), data, http.DetectContentType(data))
	if err != nil {
		return "", uploadFailed("pin file", err)
	}
	return cid, nil
}

func (p *S3Pinner) PinJSON(ctx context.Context, name string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", uploadFailed("pin json", err)
	}

	cid, err := p.put(ctx, p.objectKey(name)+".json", data, "application/json")
	if err != nil {
		return "", uploadFailed("pin json", err)
	}
	return cid, nil
}

func (p *S3Pinner) put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := p.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	head, err := p.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("head %s: %w", key, err)
	}

	cid := head.Metadata[cidMetadataKey]
	if cid == "" {
		return "", errors.New("object has no cid metadata; bucket is not IPFS-backed")
	}
	return cid, nil
}
