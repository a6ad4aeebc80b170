// Package gateway provides the HTTP client implementation of the memory
// store gateway used by the map view and the seed tool.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"memory-map-be/pkg/mapview"
)

// Client talks to the memory map API. It implements mapview.Gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type memoryPayload struct {
	Id        string    `json:"id"`
	Message   string    `json:"message"`
	Receiver  string    `json:"receiver"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	HasImage  bool      `json:"has_image"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type memoryListPayload struct {
	Memories []memoryPayload `json:"memories"`
}

func (c *Client) Create(ctx context.Context, memory mapview.NewMemory) (mapview.Feature, error) {
	var (
		req *http.Request
		err error
	)
	if memory.ImagePath != "" {
		req, err = c.newMultipartCreateRequest(ctx, memory)
	} else {
		req, err = c.newJSONCreateRequest(ctx, memory)
	}
	if err != nil {
		return mapview.Feature{}, err
	}

	var payload memoryPayload
	if err := c.do(req, &payload); err != nil {
		return mapview.Feature{}, err
	}
	return toFeature(payload), nil
}

func (c *Client) ListAll(ctx context.Context) ([]mapview.Feature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/memory/v1", nil)
	if err != nil {
		return nil, err
	}

	var payload memoryListPayload
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return toFeatures(payload.Memories), nil
}

func (c *Client) SearchByReceiver(ctx context.Context, substring string) ([]mapview.Feature, error) {
	endpoint := fmt.Sprintf("%s/api/memory/v1/search?receiver=%s", c.baseURL, url.QueryEscape(substring))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var payload memoryListPayload
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return toFeatures(payload.Memories), nil
}

func (c *Client) newJSONCreateRequest(ctx context.Context, memory mapview.NewMemory) (*http.Request, error) {
	body, err := json.Marshal(map[string]interface{}{
		"message":   memory.Message,
		"receiver":  memory.Receiver,
		"latitude":  memory.Latitude,
		"longitude": memory.Longitude,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/memory/v1", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) newMultipartCreateRequest(ctx context.Context, memory mapview.NewMemory) (*http.Request, error) {
	file, err := os.Open(memory.ImagePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"message":   memory.Message,
		"receiver":  memory.Receiver,
		"latitude":  strconv.FormatFloat(memory.Latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(memory.Longitude, 'f', -1, 64),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	part, err := writer.CreateFormFile("image", filepath.Base(memory.ImagePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/memory/v1", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, env.Message)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func toFeature(p memoryPayload) mapview.Feature {
	return mapview.Feature{
		ID:        p.Id,
		Message:   p.Message,
		Receiver:  p.Receiver,
		Longitude: p.Longitude,
		Latitude:  p.Latitude,
		HasImage:  p.HasImage,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

func toFeatures(payloads []memoryPayload) []mapview.Feature {
	features := make([]mapview.Feature, 0, len(payloads))
	for _, p := range payloads {
		features = append(features, toFeature(p))
	}
	return features
}
