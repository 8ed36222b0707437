package model

type UploadEventImageRequest struct{}

type UploadEventImageResponse struct {
	URL string `json:"url"`
}
