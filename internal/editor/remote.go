package editor

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3DraftStore mirrors the draft to an S3-compatible bucket so a scratchpad
// survives the local machine. Same durability contract as any draft store:
// best-effort, failures are swallowed by the Persister.
type S3DraftStore struct {
	bucketName  string
	objectName  string
	minioClient *minio.Client
}

func NewS3DraftStore(endpoint, accessKey, secretKey, bucketName string, secure bool) (*S3DraftStore, error) {
	// Initialize minio client object.
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	return &S3DraftStore{
		bucketName:  bucketName,
		objectName:  "draft.md",
		minioClient: minioClient,
	}, nil
}

func (s *S3DraftStore) Load() (string, bool, error) {
	object, err := s.minioClient.GetObject(context.Background(), s.bucketName, s.objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", false, err
	}
	defer object.Close()
	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func (s *S3DraftStore) Save(content string) error {
	data := []byte(content)
	_, err := s.minioClient.PutObject(context.Background(), s.bucketName, s.objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/markdown",
	})
	return err
}
