package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	cfg "github.com/maheshrc27/salidas/configs"
)

// deleteBatch is the DeleteObjects limit.
const deleteBatch = 1000

// R2Service stores every logical bucket under its own key prefix in a
// single R2 bucket.
type R2Service struct {
	config cfg.R2
	client *s3.Client
}

func NewR2Service(ctx context.Context, c cfg.Config) (*R2Service, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.R2.AccessKey, c.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	endpoint := c.R2.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2.AccountID)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = c.R2.Endpoint != ""
	})

	return &R2Service{config: c.R2, client: client}, nil
}

func (r *R2Service) key(bucket Bucket, path string) string {
	return string(bucket) + "/" + path
}

func (r *R2Service) Upload(ctx context.Context, bucket Bucket, path string, body []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.BucketName),
		Key:         aws.String(r.key(bucket, path)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	}

	_, err := r.client.PutObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (r *R2Service) PublicURL(bucket Bucket, path string) string {
	return publicURL(r.config.PublicURL, bucket, path)
}

func (r *R2Service) PathFromURL(bucket Bucket, url string) (string, bool) {
	return pathFromURL(r.config.PublicURL, bucket, url)
}

func (r *R2Service) Remove(ctx context.Context, bucket Bucket, paths []string) error {
	for start := 0; start < len(paths); start += deleteBatch {
		end := min(start+deleteBatch, len(paths))

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, p := range paths[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(r.key(bucket, p))})
		}

		out, err := r.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(r.config.BucketName),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			slog.Info(err.Error())
			return err
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return fmt.Errorf("failed to remove %d objects, first %s: %s", len(out.Errors), aws.ToString(first.Key), aws.ToString(first.Message))
		}
	}
	return nil
}

// List returns the objects in bucket whose path starts with prefix.
func (r *R2Service) List(ctx context.Context, bucket Bucket, prefix string) ([]StoredObject, error) {
	root := r.key(bucket, "")
	paginator := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.config.BucketName),
		Prefix: aws.String(root + prefix),
	})

	var objects []StoredObject
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		for _, obj := range page.Contents {
			objects = append(objects, StoredObject{
				Path:         aws.ToString(obj.Key)[len(root):],
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}
