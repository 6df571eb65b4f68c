// Package detector talks to the external facial-emotion detection
// service, and provides a local simulator for running without one. Either
// source produces the same raw label→confidence shape; the classifier
// normalizes both identically.
package detector

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Detect sends a face image to the detection service and returns its raw
// emotion vector, confidences in [0, 100].
func (c *Client) Detect(ctx context.Context, image []byte) (map[string]float64, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("emotion detector is not configured")
	}

	payload := map[string]string{"image": base64.StdEncoding.EncodeToString(image)}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/face/emotions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("detector status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out struct {
		Emotions map[string]float64 `json:"emotions"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decode detector response: %w", err)
	}
	return out.Emotions, nil
}
