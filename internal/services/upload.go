package services

import (
	"context"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
	"github.com/WildTrack-Africa/field_client/internal/domain"
)

// Upload covers the generic file upload endpoint.
type Upload struct {
	api *apiclient.Client
}

// NewUpload returns the upload service.
func NewUpload(api *apiclient.Client) *Upload {
	return &Upload{api: api}
}

// File submits a file plus its attachment type as a multipart form.
func (s *Upload) File(ctx context.Context, filename string, content []byte, fileType string) (domain.UploadResult, error) {
	if fileType == "" {
		fileType = "observation"
	}

	var out domain.UploadResult
	err := s.api.PostMultipart(ctx, "/upload", map[string]string{"type": fileType}, "file", filename, content, &out)
	if err != nil {
		return domain.UploadResult{}, err
	}
	return out, nil
}
