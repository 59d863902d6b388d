package filestorage

import (
	"context"

	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinioClient(cfg config.MinioConfig) (*minio.Client, error) {
	return minio.New(cfg.ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: cfg.USE_SSL,
		Region: "us-east-1",
	})
}

// BucketStore keeps uploaded bytes in a single bucket under unique keys.
type BucketStore struct {
	s3     *minio.Client
	bucket string
}

func NewBucketStore(s3 *minio.Client, bucket string) *BucketStore {
	return &BucketStore{s3: s3, bucket: bucket}
}

func (bs *BucketStore) Put(ctx context.Context, directory, fileName, contentType string, data []byte) (model.File, error) {
	info, err := util.UploadBytesToS3(ctx, data, fileName, contentType, &util.FileUploadOptions{
		DirectoryPath: directory,
		UniquePrefix:  true,
		Bucket:        bs.bucket,
		S3:            bs.s3,
	})
	if err != nil {
		return model.File{}, err
	}

	return model.File{
		FileName:   util.SafeFileName(fileName),
		ObjectKey:  info.Key,
		BucketName: info.Bucket,
		Size:       info.Size,
		MimeType:   contentType,
	}, nil
}

func (bs *BucketStore) Remove(ctx context.Context, file model.File) error {
	return file.Delete(ctx, bs.s3)
}
