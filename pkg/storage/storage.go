package storage

import "context"

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	SSLDisabled    bool
}

type UploadObject struct {
	Bucket   string
	Prefix   string
	FileName string
	Mime     string
	Data     []byte
}

type UploadResponse struct {
	Url      string
	FileName string
}

type Storage interface {
	Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error)
	BulkUpload(ctx context.Context, objects []*UploadObject) ([]*UploadResponse, error)
}
