// Package s3 archives bronze run files to an S3 bucket, so raw data
// survives the node the pipeline ran on. Archiving happens after the local
// write succeeds; a run is never considered fetched until the local bronze
// file exists.
package s3

import (
	"bytes"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// ArchiveOption is a functional option type for Archiver.
type ArchiveOption func(a *Archiver)

// OptArchivePrefix sets a key prefix for uploaded objects.
func OptArchivePrefix(prefix string) ArchiveOption {
	return func(a *Archiver) {
		a.prefix = prefix
	}
}

// OptArchiveService sets the S3 client, letting tests substitute a fake.
func OptArchiveService(svc s3iface.S3API) ArchiveOption {
	return func(a *Archiver) {
		a.svc = svc
	}
}

// Archiver uploads local files to one bucket.
type Archiver struct {
	bucket string
	prefix string
	svc    s3iface.S3API
}

// NewArchiver returns an Archiver for the bucket in the given region.
func NewArchiver(region, bucket string, opts ...ArchiveOption) (*Archiver, error) {
	a := &Archiver{bucket: bucket}
	for _, opt := range opts {
		opt(a)
	}
	if a.svc == nil {
		sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
		if err != nil {
			return nil, errors.Wrap(err, "creating AWS session")
		}
		a.svc = s3.New(sess)
	}
	return a, nil
}

// Archive uploads the file at localPath under its base name (plus any
// configured prefix) and returns the object key.
func (a *Archiver) Archive(localPath string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", errors.Wrapf(err, "reading '%s'", localPath)
	}
	key := filepath.Base(localPath)
	if a.prefix != "" {
		key = path.Join(a.prefix, key)
	}
	_, err = a.svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", errors.Wrapf(err, "uploading '%s' to bucket '%s'", key, a.bucket)
	}
	return key, nil
}
