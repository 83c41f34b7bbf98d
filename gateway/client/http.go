package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/betbot/projectx/gateway/types"
)

// transport wraps resty with the gateway's conventions: JSON both ways,
// bearer auth, and one central place that classifies failures. It never
// retries on its own; retry-on-expiry is the session's job.
type transport struct {
	rc *resty.Client
}

func newTransport(baseURL string, timeout time.Duration) *transport {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "projectx-go")
	return &transport{rc: rc}
}

// post issues one call and decodes the body into out. An empty token
// sends the request unsigned (login only).
func (t *transport) post(ctx context.Context, endpoint, token string, body any, out types.Enveloped) error {
	req := t.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Post(endpoint)
	if err != nil {
		return &NetworkError{Op: "POST " + endpoint, Err: err}
	}
	if err := classify(endpoint, resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &InvalidRequestError{
			StatusCode: resp.StatusCode(),
			Message:    "malformed response body from " + endpoint,
		}
	}
	return nil
}

// classify maps an HTTP status onto the error taxonomy. A 2xx passes
// through; the envelope inside the body is judged separately.
func classify(endpoint string, resp *resty.Response) error {
	code := resp.StatusCode()
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &AuthenticationError{StatusCode: code, Message: bodyText(resp)}
	case code == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfter(resp), Message: bodyText(resp)}
	case code >= 500:
		return &NetworkError{Op: "POST " + endpoint, StatusCode: code}
	case code >= 400:
		return &InvalidRequestError{StatusCode: code, Message: bodyText(resp)}
	}
	return nil
}

// apiError converts a decoded but unsuccessful envelope into a typed
// error. The gateway reports business rejections as 2xx + success=false.
func apiError(env types.Envelope) error {
	if env.Success {
		return nil
	}
	return &InvalidRequestError{
		StatusCode: http.StatusOK,
		ErrorCode:  env.ErrorCode,
		Message:    env.ErrorMessage,
	}
}

func retryAfter(resp *resty.Response) time.Duration {
	if v := resp.Header().Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

func bodyText(resp *resty.Response) string {
	return strings.TrimSpace(string(resp.Body()))
}
