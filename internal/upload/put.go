package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPPutter PUTs the raw file body to a presigned URL. The URL already
// carries its authorization, so no credentials are attached.
type HTTPPutter struct {
	Client *http.Client
}

func NewHTTPPutter(timeout time.Duration) *HTTPPutter {
	return &HTTPPutter{Client: &http.Client{Timeout: timeout}}
}

func (p *HTTPPutter) Put(ctx context.Context, uploadURL string, f File) error {
	body, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer body.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.ContentLength = f.Size
	req.Header.Set("Content-Type", f.DetectedType())

	hc := p.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("storage responded %s", resp.Status)
	}
	return nil
}
