package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient is the concrete Client speaking JSON over HTTP to the backend.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// errorBody is the error contract shared by all backend endpoints:
// a human-readable message plus an optional per-field validation map
// (some deployments name it "errors", others "fieldErrors").
type errorBody struct {
	Message     string            `json:"message"`
	Errors      map[string]string `json:"errors"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

// do issues a request and returns the raw response body for 2xx statuses.
// Transport faults map to ErrUnavailable; non-2xx responses map to
// *AuthError with the server message and field errors when present.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.mapError(resp.StatusCode, data)
	}
	return data, nil
}

func (c *HTTPClient) mapError(status int, data []byte) error {
	var eb errorBody
	_ = json.Unmarshal(data, &eb)

	msg := eb.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	fieldErrors := eb.Errors
	if fieldErrors == nil {
		fieldErrors = eb.FieldErrors
	}

	return &AuthError{StatusCode: status, Message: msg, FieldErrors: fieldErrors}
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	data, err := c.do(ctx, method, path, token, "application/json", body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (Envelope, error) {
	payload := map[string]string{"email": email, "password": password}
	var env Envelope
	if err := c.doJSON(ctx, http.MethodPost, "/farmer/login", "", payload, &env); err != nil {
		return nil, err
	}
	return env, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (Envelope, error) {
	var env Envelope
	if err := c.doJSON(ctx, http.MethodPost, "/farmer/signup", "", req, &env); err != nil {
		return nil, err
	}
	return env, nil
}

// UpdateProfile sends a partial profile update. The Authorization header is
// attached only when a token is present; without one the server is expected
// to reject the request, and its message is surfaced unchanged.
func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, fields map[string]any) (Envelope, error) {
	var env Envelope
	if err := c.doJSON(ctx, http.MethodPut, "/farmer/profile", token, fields, &env); err != nil {
		return nil, err
	}
	return env, nil
}

// DetectDisease uploads a leaf image as the multipart field "image" and
// returns the detection result verbatim: the model's response shape is the
// backend's business, the CLI only renders it.
func (c *HTTPClient) DetectDisease(ctx context.Context, filename string, image io.Reader) (json.RawMessage, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPost, "/disease/detect", "", mw.FormDataContentType(), buf)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (c *HTTPClient) RecommendCrop(ctx context.Context, req CropRequest) (*CropResponse, error) {
	var resp CropResponse
	if err := c.doJSON(ctx, http.MethodPost, "/recommend-crop", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SubmitFeedback(ctx context.Context, req FeedbackRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/feedback", "", req, nil)
}

func (c *HTTPClient) FeedbackAnalytics(ctx context.Context) (*FeedbackStats, error) {
	var stats FeedbackStats
	if err := c.doJSON(ctx, http.MethodGet, "/feedback/analytics", "", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) Dashboard(ctx context.Context, email string) (*Dashboard, error) {
	path := "/farmer/dashboard?email=" + url.QueryEscape(email)
	var d Dashboard
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
