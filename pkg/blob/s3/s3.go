package s3

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/go-hclog"

	"github.com/buildvault/pybuild/pkg/blob"
)

// s3Store publishes artifacts into a single S3 bucket.
type s3Store struct {
	c      *s3.Client
	bucket string

	l hclog.Logger
}

func init() {
	blob.RegisterCallback(newFactory)
}

func newFactory() {
	blob.RegisterFactory("s3", newS3Store)
}

func newS3Store(l hclog.Logger) (blob.Store, error) {
	x := new(s3Store)
	x.l = l.Named("s3")

	x.bucket = os.Getenv("PYBUILD_S3_BUCKET")
	if x.bucket == "" {
		l.Error("PYBUILD_S3_BUCKET must be set")
		return nil, errors.New("required variable unset")
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		l.Error("Error loading AWS configuration", "error", err)
		return nil, err
	}
	x.c = s3.NewFromConfig(cfg)

	return x, nil
}

func (s *s3Store) Put(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		s.l.Warn("Error opening artifact", "path", path, "err", err)
		return err
	}
	defer f.Close()

	_, err = s.c.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		s.l.Error("Error uploading artifact", "bucket", s.bucket, "key", key, "error", err)
		return err
	}
	s.l.Info("Uploaded artifact", "bucket", s.bucket, "key", key)
	return nil
}

func (s *s3Store) List(ctx context.Context, prefix string) ([]blob.Object, error) {
	out, err := s.c.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, err
	}

	objects := make([]blob.Object, 0, len(out.Contents))
	for _, obj := range out.Contents {
		o := blob.Object{Key: aws.ToString(obj.Key)}
		if obj.Size != nil {
			o.Size = *obj.Size
		}
		if obj.LastModified != nil {
			o.LastModified = *obj.LastModified
		}
		objects = append(objects, o)
	}
	return objects, nil
}

func (s *s3Store) Close() error {
	return nil
}
