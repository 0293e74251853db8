// Package rest implements the photo and album stores against the backend's
// JSON API.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	httputils "github.com/twitsprout/tools/http"
	jsonutils "github.com/twitsprout/tools/json"
	"github.com/twitsprout/tools/requestid"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

// Config contains the configuration for a REST client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     tools.Logger
}

// Client talks to the photo-library backend.
type Client struct {
	baseURL string
	client  *http.Client
	logger  tools.Logger
}

// New creates a new backend client.
func New(c Config) (*Client, error) {
	if c.BaseURL == "" {
		return nil, errors.New("rest: base url is required")
	}
	if c.Logger == nil {
		return nil, errors.New("rest: logger is required")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = httputils.NewClient(httputils.WithTimeout(15 * time.Second))
	}
	return &Client{
		baseURL: strings.TrimRight(c.BaseURL, "/"),
		client:  c.HTTPClient,
		logger:  c.Logger,
	}, nil
}

type errRes struct {
	Error string `json:"error"`
}

// do performs one JSON round trip. A request that never completes maps to
// gallery.NetworkError; a non-2xx status maps to gallery.BackendError with
// the backend's error message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	op := method + " " + path

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body *bytes.Buffer
	if in != nil {
		body = &bytes.Buffer{}
		if err := jsonutils.Encode(body, in, ""); err != nil {
			return errors.Wrap(err, "encode request body")
		}
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, u, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := requestid.Get(ctx)
	if reqID == "" {
		reqID = requestid.New()
	}
	req.Header.Set("X-Request-Id", reqID)

	res, err := c.client.Do(req)
	if err != nil {
		return &gl.NetworkError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var er errRes
		msg := ""
		if decErr := jsonutils.Decode(res.Body, &er); decErr == nil {
			msg = er.Error
		}
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		c.logger.Debug("[do] backend rejected request",
			"request_id", reqID,
			"op", op,
			"status", res.StatusCode,
			"details", msg,
		)
		if res.StatusCode == http.StatusNotFound {
			return gl.ErrNotFound
		}
		return &gl.BackendError{Status: res.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := jsonutils.Decode(res.Body, out); err != nil {
		return errors.Wrap(err, "decode response body")
	}
	return nil
}

func pageQuery(cursor string, limit int) url.Values {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return q
}
