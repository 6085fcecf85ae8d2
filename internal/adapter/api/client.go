package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AzizovM-doder/Rent-A-Room/internal/notify"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

const defaultTimeout = 15 * time.Second

// TokenSource yields the current bearer token, or "" when the user is not
// logged in. Absence of a token simply omits the Authorization header;
// endpoints that require auth fail server-side.
type TokenSource interface {
	Token() string
}

// RequestError is any non-success HTTP response, carrying the message from the
// body's "error" field when the backend provided one.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// progress describes the transient notification texts for a call. Calls
// without progress stay silent, mirroring the web client's toast usage.
type progress struct {
	loading string
	success string
	failure string
}

type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	log      logger.Logger
	notifier notify.Notifier
	tracer   trace.Tracer
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log logger.Logger, notifier notify.Notifier) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if notifier == nil {
		notifier = notify.NewNop()
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		log:      log,
		notifier: notifier,
		tracer:   otel.Tracer("adapter/api"),
	}
}

// doJSON marshals payload (when non-nil) and performs the call with a JSON
// content type.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}, prog *progress) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body for %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", out, prog)
}

// do performs one HTTP call. contentType == "" leaves the header unset, which
// is required for multipart bodies where the transport-level writer owns the
// boundary parameter.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}, prog *progress) error {
	reqID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
			attribute.String("request.id", reqID),
		))
	defer span.End()

	if prog != nil && prog.loading != "" {
		c.notifier.Loading(reqID, prog.loading)
	}

	err := c.roundTrip(ctx, method, path, body, contentType, reqID, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if prog != nil {
			msg := prog.failure
			if msg == "" {
				msg = err.Error()
			}
			c.notifier.Error(reqID, msg)
		}
		return err
	}

	if prog != nil && prog.success != "" {
		c.notifier.Success(reqID, prog.success)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType, reqID string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", reqID)

	c.log.Debugf("api request: %s %s (request_id=%s)", method, path, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Errorf("api request failed: %s %s: %v", method, path, err)
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Status: resp.StatusCode, Message: errorMessage(resp)}
		c.log.Warnf("api request rejected: %s %s: %s", method, path, reqErr.Message)
		return reqErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage pulls the structured "error" field out of a failure response
// body; a generic message is used when the body is not parseable.
func errorMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("request failed (%d)", resp.StatusCode)
}
