package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the storage API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new client.
func New(cfg Config) *Client {
	var timeout time.Duration
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.ApiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health calls the health endpoint.
func (c *Client) Health(ctx context.Context) (*Result, error) {
	return c.result(ctx, http.MethodGet, "/health/", nil, nil, "")
}

// ListBuckets fetches every bucket.
func (c *Client) ListBuckets(ctx context.Context) ([]Bucket, error) {
	var out BucketList
	if err := c.do(ctx, http.MethodGet, "/list_buckets", nil, nil, "", &out); err != nil {
		return nil, err
	}
	return out.Buckets, nil
}

// ListEntries lists the folders and files directly under folder.
func (c *Client) ListEntries(ctx context.Context, bucket, folder string) ([]Item, error) {
	q := url.Values{}
	q.Set("bucket", bucket)
	q.Set("folder", folder)

	var out []Item
	if err := c.do(ctx, http.MethodGet, "/", q, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upload streams a file into folder as a multipart form.
func (c *Client) Upload(ctx context.Context, bucket, folder, filename string, content io.Reader) (*Result, error) {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		pw.CloseWithError(writeUpload(w, folder, filename, content))
	}()

	res, err := c.result(ctx, http.MethodPost, "/upload/"+url.PathEscape(bucket), nil, pr, w.FormDataContentType())
	// Unblocks the writer when the request ended before the body was consumed.
	pr.CloseWithError(io.ErrClosedPipe)
	<-done
	return res, err
}

func writeUpload(w *multipart.Writer, folder, filename string, content io.Reader) error {
	if err := w.WriteField("folder", folder); err != nil {
		return fmt.Errorf("failed to write form field: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return nil
}

// CreateFolder creates name under parent.
func (c *Client) CreateFolder(ctx context.Context, bucket, name, parent string) (*Result, error) {
	form := url.Values{}
	form.Set("folder_name", name)
	form.Set("parent_folder", parent)
	return c.postForm(ctx, "/create_folder/"+url.PathEscape(bucket), form)
}

// DeleteFile removes a single object.
func (c *Client) DeleteFile(ctx context.Context, bucket, path string) (*Result, error) {
	return c.result(ctx, http.MethodDelete, "/delete_file/"+url.PathEscape(bucket), pathQuery(path), nil, "")
}

// DeleteFolder removes a folder and everything under it.
func (c *Client) DeleteFolder(ctx context.Context, bucket, path string) (*Result, error) {
	return c.result(ctx, http.MethodDelete, "/delete_folder/"+url.PathEscape(bucket), pathQuery(path), nil, "")
}

// Move renames path to newPath.
func (c *Client) Move(ctx context.Context, bucket, path, newPath string) (*Result, error) {
	return c.postJSON(ctx, "/move_file/"+url.PathEscape(bucket), MoveRequest{Path: path, NewPath: newPath})
}

// Copy duplicates path at newPath.
func (c *Client) Copy(ctx context.Context, bucket, path, newPath string) (*Result, error) {
	return c.postJSON(ctx, "/copy_file/"+url.PathEscape(bucket), MoveRequest{Path: path, NewPath: newPath})
}

// DownloadURL requests a temporary signed URL for path.
func (c *Client) DownloadURL(ctx context.Context, bucket, path string) (*Result, error) {
	return c.result(ctx, http.MethodGet, "/download/"+url.PathEscape(bucket), pathQuery(path), nil, "")
}

// CreateBucket creates a new bucket.
func (c *Client) CreateBucket(ctx context.Context, name string) (*Result, error) {
	form := url.Values{}
	form.Set("bucket_name", name)
	return c.postForm(ctx, "/create_bucket", form)
}

// DeleteBucket deletes a bucket and its contents.
func (c *Client) DeleteBucket(ctx context.Context, bucket string) (*Result, error) {
	return c.result(ctx, http.MethodDelete, "/delete_bucket/"+url.PathEscape(bucket), nil, nil, "")
}

func pathQuery(path string) url.Values {
	q := url.Values{}
	q.Set("path", path)
	return q
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*Result, error) {
	return c.result(ctx, http.MethodPost, path, nil, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*Result, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.result(ctx, http.MethodPost, path, nil, bytes.NewReader(data), "application/json")
}

func (c *Client) result(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*Result, error) {
	var out Result
	if err := c.do(ctx, method, path, query, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs the request. Non-2xx answers become *Error; out is decoded only on success.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Result: decodeResult(raw)}
	}

	if r, ok := out.(*Result); ok {
		*r = *decodeResult(raw)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeResult keeps the raw body even when it is not the expected JSON.
func decodeResult(raw []byte) *Result {
	var r Result
	_ = json.Unmarshal(raw, &r)
	r.Raw = strings.TrimSpace(string(raw))
	return &r
}
