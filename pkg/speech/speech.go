// Package speech talks to a local transcription service over HTTP. The
// service records from the microphone on request and returns the
// recognized text.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL       = "http://127.0.0.1:8090"
	DefaultPrimaryDevice = "cuda"
	DefaultFallback      = "cpu"
)

// ErrNoSpeech reports a recording that completed but contained no
// recognizable speech. Callers present it differently from a failure.
var ErrNoSpeech = errors.New("no speech detected")

// Config configures the transcription client.
type Config struct {
	BaseURL       string
	PrimaryDevice string
	// FallbackDevice is tried once when the primary device reports a
	// capability or resource failure. Empty disables the retry.
	FallbackDevice string
	Timeout        time.Duration
}

// Client is a transcription service client. One in-flight recording at
// a time is the caller's responsibility; the client itself is safe for
// concurrent use.
type Client struct {
	baseURL  string
	primary  string
	fallback string
	client   *http.Client
}

// New creates a new transcription client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PrimaryDevice == "" {
		cfg.PrimaryDevice = DefaultPrimaryDevice
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		primary:  cfg.PrimaryDevice,
		fallback: cfg.FallbackDevice,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Request describes one recording.
type Request struct {
	// Duration is how long to record.
	Duration time.Duration
	// Language hints the recognizer, e.g. "en" or "ja". Empty lets the
	// service detect it.
	Language string
}

type wireRequest struct {
	RequestID string  `json:"request_id"`
	Device    string  `json:"device"`
	Seconds   float64 `json:"seconds"`
	Language  string  `json:"language,omitempty"`
}

type wireResponse struct {
	Text      string `json:"text"`
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Transcribe records and transcribes once. The primary device is tried
// first; a capability-missing or resource-exhaustion failure triggers a
// single retry on the fallback device. Any other failure is returned
// as-is. Both attempts share one correlation ID.
func (c *Client) Transcribe(ctx context.Context, req Request) (string, error) {
	requestID := uuid.NewString()

	text, err := c.transcribeOn(ctx, requestID, c.primary, req)
	if err == nil || c.fallback == "" || !isDeviceFailure(err) {
		return text, err
	}
	return c.transcribeOn(ctx, requestID, c.fallback, req)
}

func (c *Client) transcribeOn(ctx context.Context, requestID, device string, req Request) (string, error) {
	body, err := json.Marshal(wireRequest{
		RequestID: requestID,
		Device:    device,
		Seconds:   req.Duration.Seconds(),
		Language:  req.Language,
	})
	if err != nil {
		return "", fmt.Errorf("marshal transcription request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create transcription request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcription response: %w", err)
	}

	var out wireResponse
	if resp.StatusCode != http.StatusOK {
		_ = json.Unmarshal(respBody, &out)
		return "", &DeviceError{
			Device:     device,
			StatusCode: resp.StatusCode,
			Code:       out.ErrorCode,
			Message:    out.Error,
		}
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	if out.ErrorCode != "" {
		return "", &DeviceError{Device: device, StatusCode: resp.StatusCode, Code: out.ErrorCode, Message: out.Error}
	}
	if out.Text == "" {
		return "", ErrNoSpeech
	}
	return out.Text, nil
}
