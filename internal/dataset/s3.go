package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Uploader pushes a run's output files to an S3 bucket
type S3Uploader struct {
	bucket   string
	prefix   string
	uploader *s3manager.Uploader
}

// NewS3Uploader builds an uploader using the ambient AWS credential chain
func NewS3Uploader(bucket, prefix string) (*S3Uploader, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating AWS session: %w", err)
	}
	return &S3Uploader{
		bucket:   bucket,
		prefix:   prefix,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// UploadDir uploads every regular file under dir, keyed by its path
// relative to dir under the configured prefix
func (u *S3Uploader) UploadDir(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("error getting relative path: %w", err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", path, err)
		}
		defer f.Close()

		key := filepath.ToSlash(filepath.Join(u.prefix, rel))
		if _, err := u.uploader.Upload(&s3manager.UploadInput{
			Bucket: aws.String(u.bucket),
			Key:    aws.String(key),
			Body:   f,
		}); err != nil {
			return fmt.Errorf("error uploading %s to s3://%s/%s: %w", path, u.bucket, key, err)
		}
		return nil
	})
}
