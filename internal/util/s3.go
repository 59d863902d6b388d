package util

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
)

func GetProfileDirectoryPath(profileId string) string {
	return fmt.Sprintf("profiles/%s", profileId)
}

func GetDocumentDirectoryPath(profileId string) string {
	return GetProfileDirectoryPath(profileId) + "/documents"
}

func GetRFPDirectoryPath(profileId string) string {
	return GetProfileDirectoryPath(profileId) + "/rfps"
}

func createBucketIfNotExists(ctx context.Context, s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = s3.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

type FileUploadOptions struct {
	// Add a prefix to the file name
	// For example, if the file name is "rfp.pdf" and the prefix is "profiles/123/rfps",
	// the resulting name will be "profiles/123/rfps/rfp.pdf"
	DirectoryPath string
	UniquePrefix  bool
	Bucket        string
	S3            *minio.Client
}

// UploadBytesToS3 is used when the upload has already been buffered, e.g. for text extraction.
func UploadBytesToS3(ctx context.Context, data []byte, fileName, contentType string, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	if err := createBucketIfNotExists(ctx, fuo.S3, fuo.Bucket); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to create bucket: %w", err)
	}

	info, err := fuo.S3.PutObject(
		ctx,
		fuo.Bucket,
		prepareObjectKey(fileName, fuo),
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info, nil
}

// Generates the final object key with uniqueness and prefix
func prepareObjectKey(originalName string, fuo *FileUploadOptions) string {
	fileName := SafeFileName(originalName)

	if fuo != nil {
		if fuo.UniquePrefix {
			fileName = AddUniquePrefixToFileName(fileName)
		}

		if fuo.DirectoryPath != "" {
			fileName = path.Join(fuo.DirectoryPath, fileName)
		}
	}

	return fileName
}
