package blocks_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"noders-content-service/internal/application/editor"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
)

const maxResponseBytes = 4 << 20

// Client talks to the content service over its REST endpoints.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     ports.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, log ports.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type envelope struct {
	Success bool          `json:"success"`
	Block   *model.Block  `json:"block,omitempty"`
	Blocks  []model.Block `json:"blocks,omitempty"`
	Post    *model.Post   `json:"post,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (c *Client) CreatePost(ctx context.Context, title string) (*model.Post, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, "/posts", map[string]string{"title": title}, &env); err != nil {
		return nil, err
	}
	return env.Post, nil
}

func (c *Client) ListBlocks(ctx context.Context, postID string) ([]model.Block, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodGet, blocksPath(postID), nil, &env); err != nil {
		return nil, err
	}
	if env.Blocks == nil {
		return []model.Block{}, nil
	}
	return env.Blocks, nil
}

func (c *Client) CreateBlock(ctx context.Context, postID string, t model.BlockType, content model.Content, orderIndex int) (*model.Block, error) {
	body := map[string]any{
		"type":        t,
		"content":     content,
		"order_index": orderIndex,
	}
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, blocksPath(postID), body, &env); err != nil {
		return nil, err
	}
	return env.Block, nil
}

func (c *Client) UpdateBlock(ctx context.Context, postID, blockID string, content model.Content) (*model.Block, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodPut, blockPath(postID, blockID), map[string]any{"content": content}, &env); err != nil {
		return nil, err
	}
	return env.Block, nil
}

func (c *Client) DeleteBlock(ctx context.Context, postID, blockID string) error {
	return c.doJSON(ctx, http.MethodDelete, blockPath(postID, blockID), nil, &envelope{})
}

func (c *Client) UploadImage(ctx context.Context, upload *model.UploadImageDTO) (*model.Image, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", upload.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, err
	}
	if upload.Usage != "" {
		if err := w.WriteField("usage", string(upload.Usage)); err != nil {
			return nil, err
		}
	}
	if upload.AltText != "" {
		if err := w.WriteField("alt_text", upload.AltText); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	status, raw, err := c.do(ctx, http.MethodPost, "/upload/image", w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return nil, requestError(status, raw)
	}

	var image model.Image
	if err := json.Unmarshal(raw, &image); err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &image, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out *envelope) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	status, raw, err := c.do(ctx, method, path, contentType, reader)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		if status >= 400 {
			return &editor.RequestError{Status: status}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if status >= 400 || !out.Success {
		return &editor.RequestError{Status: status, Reason: out.Error}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("Request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)))
	return resp.StatusCode, raw, nil
}

func requestError(status int, raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != "" {
		return &editor.RequestError{Status: status, Reason: env.Error}
	}
	return &editor.RequestError{Status: status}
}

func blocksPath(postID string) string {
	return "/posts/" + url.PathEscape(postID) + "/blocks"
}

func blockPath(postID, blockID string) string {
	return blocksPath(postID) + "/" + url.PathEscape(blockID)
}
