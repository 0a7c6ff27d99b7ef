package backend

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// S3 serves tile files from an S3-compatible bucket, one object per
// key under prefix. It has no local path, so callers must fall back to
// the read-into-buffer I/O path rather than mmap for these files
// (spec.md §4.4).
type S3 struct {
	client *minio.Client
	bucket string
	prefix string
	ctx    context.Context
}

// NewS3 returns a Backend backed by an already-configured minio client.
func NewS3(ctx context.Context, client *minio.Client, bucket, prefix string) *S3 {
	return &S3{client: client, bucket: bucket, prefix: prefix, ctx: ctx}
}

func (b *S3) Open(name string) (File, error) {
	key := b.prefix + name
	obj, err := b.client.GetObject(b.ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("backend: get %s/%s: %w", b.bucket, key, err)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, b.bucket, key)
		}
		return nil, fmt.Errorf("backend: stat %s/%s: %w", b.bucket, key, err)
	}
	return &s3File{obj: obj, size: info.Size}, nil
}

type s3File struct {
	obj  *minio.Object
	size int64
}

// ReadAt issues a ranged GET via the object's internal seek+read, which
// minio.Object implements directly.
func (f *s3File) ReadAt(p []byte, off int64) (int, error) { return f.obj.ReadAt(p, off) }
func (f *s3File) Size() int64                             { return f.size }
func (f *s3File) LocalPath() (string, bool)               { return "", false }
func (f *s3File) Close() error                            { return f.obj.Close() }
