package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3 struct {
	Client        *s3.Client
	Bucket        string
	Prefix        string
	PublicBaseURL string

	presign *s3.PresignClient
}

type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg)
	return &S3{
		Client:        client,
		Bucket:        cfg.Bucket,
		Prefix:        cfg.Prefix,
		PublicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		presign:       s3.NewPresignClient(client),
	}, nil
}

// Presign returns a PUT URL bound to the object key and content type.
func (s *S3) Presign(ctx context.Context, in PresignInput) (Presigned, error) {
	key := objectKey(s.Prefix, in.Category, in.Filename)
	exp := expiry(in.Expires)

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.Bucket,
		Key:         &key,
		ContentType: &in.ContentType,
	}, s3.WithPresignExpires(exp))
	if err != nil {
		return Presigned{}, fmt.Errorf("presign put %s: %w", key, err)
	}

	return Presigned{
		Key:       key,
		UploadURL: req.URL,
		FileURL:   s.PublicBaseURL + "/" + key,
		ExpiresAt: time.Now().Add(exp),
	}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	})
	return err
}

func (s *S3) String() string { return fmt.Sprintf("s3(%s/%s)", s.Bucket, s.Prefix) }
