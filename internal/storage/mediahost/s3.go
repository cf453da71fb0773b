package mediahost

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"sweetcrumb/internal/domain/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the part of *s3.Client the host needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
	MaxSize   int64
}

// S3 stores objects in a bucket. Any S3 compatible service works when
// Endpoint is set.
type S3 struct {
	api       ObjectAPI
	bucket    string
	publicURL string
	maxSize   int64
}

func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	const op = "mediahost.NewS3"

	if opts.Bucket == "" {
		return nil, fmt.Errorf("%s: bucket is required", op)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3WithAPI(client, opts), nil
}

func NewS3WithAPI(api ObjectAPI, opts S3Options) *S3 {
	publicURL := opts.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return &S3{
		api:       api,
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxSize:   opts.MaxSize,
	}
}

func (s *S3) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.UploadResult, error) {
	const op = "mediahost.S3.Upload"

	mimeType, ext, err := DetectImage(file, s.maxSize)
	if err != nil {
		return models.UploadResult{}, err
	}

	src, err := file.Open()
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}
	defer src.Close()

	key := objectKey(folder, ext)

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentType:   aws.String(mimeType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.UploadResult{
		URL:      s.publicURL + "/" + key,
		PublicID: key,
		Bytes:    file.Size,
	}, nil
}

func (s *S3) Delete(ctx context.Context, publicID string) error {
	const op = "mediahost.S3.Delete"

	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
