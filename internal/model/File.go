package model

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

// File describes an object kept in the bucket. It is embedded into rows that own an upload.
type File struct {
	FileName   string `gorm:"type:text;not null" json:"fileName"`
	ObjectKey  string `gorm:"type:text;not null;default:''" json:"-"`
	BucketName string `gorm:"type:text;not null;default:''" json:"-"`
	Size       int64  `gorm:"type:bigint;not null;default:0" json:"size"`
	MimeType   string `gorm:"type:varchar(255);not null;default:''" json:"mimeType"`
}

var ErrNoStoredObject = errors.New("file has no stored object")

func (f File) HasObject() bool {
	return f.BucketName != "" && f.ObjectKey != ""
}

func (f File) ToPresignedUrl(ctx context.Context, s3 *minio.Client) (string, error) {
	if !f.HasObject() {
		return "", ErrNoStoredObject
	}

	presignedURL, err := s3.PresignedGetObject(
		ctx,
		f.BucketName,
		f.ObjectKey,
		// 60min expiration time
		time.Minute*60,
		nil,
	)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

// Open returns a reader over the stored object. Caller closes it.
func (f File) Open(ctx context.Context, s3 *minio.Client) (*minio.Object, error) {
	if !f.HasObject() {
		return nil, ErrNoStoredObject
	}

	return s3.GetObject(ctx, f.BucketName, f.ObjectKey, minio.GetObjectOptions{})
}

func (f File) Delete(ctx context.Context, s3 *minio.Client) error {
	if !f.HasObject() {
		return nil
	}

	return s3.RemoveObject(ctx, f.BucketName, f.ObjectKey, minio.RemoveObjectOptions{})
}

func (f File) ToBaseFilename() string {
	return filepath.Base(f.FileName)
}
