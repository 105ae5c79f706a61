package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
)

// PostMultipart submits a multipart form body: optional plain fields plus a
// single file part. The JSON content-type default does not apply; the
// multipart writer sets the boundary header. The bearer token is still
// attached when present.
func (c *Client) PostMultipart(ctx context.Context, endpoint string, fields map[string]string, fileField, filename string, content []byte, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("apiclient: write form field %q: %w", key, err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			return fmt.Errorf("apiclient: create file part: %w", err)
		}
		if _, err := part.Write(content); err != nil {
			return fmt.Errorf("apiclient: write file part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("apiclient: finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return fmt.Errorf("apiclient: create request: %w", err)
	}
	c.applyHeaders(req, http.Header{"Content-Type": {writer.FormDataContentType()}})

	body, ct, err := c.execute(req, http.MethodPost, endpoint, true)
	if err != nil {
		return err
	}
	return decode(body, ct, out)
}
