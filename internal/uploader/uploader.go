// Package uploader pushes files to the storage endpoint configured in
// settings and hands back the URL the file will be served from.
package uploader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrNoEndpoint is returned when no upload endpoint has been configured in
// settings.
var ErrNoEndpoint = errors.New("upload endpoint is not configured")

type Client struct {
	http *http.Client
}

func New() *Client {
	return &Client{http: &http.Client{Timeout: 30 * time.Second}}
}

// Upload POSTs the file as multipart form data to endpoint and returns the
// URL it was stored under.
func (c *Client) Upload(endpoint, filename string, r io.Reader) (string, error) {
	if endpoint == "" {
		return "", ErrNoEndpoint
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload endpoint returned status %d", resp.StatusCode)
	}

	return fmt.Sprintf("%s/%d-%s", strings.TrimRight(endpoint, "/"), time.Now().UnixMilli(), filename), nil
}
