package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// Upload is one file part of a multipart request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// OpenUpload opens a local file for upload. The caller closes the file.
func OpenUpload(path string) (Upload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return Upload{}, nil, fmt.Errorf("open upload: %w", err)
	}
	return Upload{Filename: filepath.Base(path), Content: f}, f, nil
}

type filePart struct {
	field string
	file  Upload
}

// doMultipart sends form fields and file parts. The backend binds the
// fields straight onto its entity, so no JSON part is involved.
func (c *Client) doMultipart(ctx context.Context, method, path string, query url.Values, fields url.Values, files []filePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, values := range fields {
		for _, v := range values {
			if err := w.WriteField(key, v); err != nil {
				return fmt.Errorf("write field %s: %w", key, err)
			}
		}
	}
	for _, fp := range files {
		part, err := w.CreateFormFile(fp.field, fp.file.Filename)
		if err != nil {
			return fmt.Errorf("create part %s: %w", fp.field, err)
		}
		if _, err := io.Copy(part, fp.file.Content); err != nil {
			return fmt.Errorf("copy part %s: %w", fp.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out)
}
