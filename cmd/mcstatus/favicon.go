package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// parseS3URL splits s3://bucket/key. ok is false for anything else.
func parseS3URL(dest string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(dest, "s3://")
	if !found {
		return "", "", false
	}

	bucket, key, _ = strings.Cut(rest, "/")
	return bucket, key, bucket != "" && key != ""
}

// faviconWriter stores a decoded favicon on disk or in S3.
type faviconWriter struct {
	region string
	// newS3 is swapped out in tests.
	newS3 func(ctx context.Context, region string) (objectPutter, error)
}

func newFaviconWriter(region string) *faviconWriter {
	return &faviconWriter{region: region, newS3: newS3Client}
}

func newS3Client(ctx context.Context, region string) (objectPutter, error) {
	awsCfg, err := loadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// Write stores png at dest. It reports false when dest disables writing.
func (w *faviconWriter) Write(ctx context.Context, dest string, png []byte) (bool, error) {
	if dest == "" || dest == "-" {
		return false, nil
	}

	if strings.HasPrefix(dest, "s3://") {
		bucket, key, ok := parseS3URL(dest)
		if !ok {
			return false, fmt.Errorf("invalid s3 destination %q, want s3://bucket/key", dest)
		}

		api, err := w.newS3(ctx, w.region)
		if err != nil {
			return false, err
		}

		_, err = api.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(png),
			ContentType: aws.String("image/png"),
		})
		if err != nil {
			return false, fmt.Errorf("upload favicon to %s: %w", dest, err)
		}
		return true, nil
	}

	if err := os.WriteFile(dest, png, 0644); err != nil {
		return false, err
	}
	return true, nil
}
