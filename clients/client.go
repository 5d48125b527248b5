package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobinette/fileshelf/clients/internal"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/log"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource gives the bearer token of the current session. ok is false
// when there is no usable token.
type TokenSource interface {
	Token() (token string, ok bool)
}

// Client is the authenticated base every endpoint family is built on.
type Client struct {
	baseURL string
	client  HTTPClient
	tokens  TokenSource

	timeout time.Duration
	logger  log.Logger
}

type Option func(*Client)

// WithTimeout sets the budget of calls that do not set their own.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(c HTTPClient, baseURL string, tokens TokenSource, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  c,
		tokens:  tokens,

		timeout: 30 * time.Second,
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Request describes a single API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is JSON encoded when set. Raw and ContentType take precedence for
	// pre-encoded bodies such as multipart forms.
	Body        interface{}
	Raw         io.Reader
	ContentType string

	// Anonymous calls are sent without Authorization header.
	Anonymous bool

	// Timeout overrides the client timeout for JSON calls.
	Timeout time.Duration
}

// Do sends r and returns the response when its status is 2xx. Any other
// status is turned into a coded error and the body is closed.
func (c *Client) Do(ctx context.Context, r Request) (*http.Response, error) {
	res, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}

	if !success(res) {
		defer res.Body.Close()
		err := internal.ResponseError(res)
		c.logger.WithField("path", r.Path).WithField("status", res.StatusCode).Debugf("api error: %v", err)
		return nil, err
	}
	return res, nil
}

// send issues the request whatever the status of the answer.
func (c *Client) send(ctx context.Context, r Request) (*http.Response, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	if !r.Anonymous {
		token, ok := c.tokens.Token()
		if !ok {
			return nil, errors.New("not authenticated", errors.Unauthorized())
		}
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	c.logger.WithField("method", r.Method).WithField("path", r.Path).Debug("calling api")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("error calling %s %s", r.Method, r.Path), errors.WithCause(err))
	}
	return res, nil
}

func success(res *http.Response) bool {
	return res.StatusCode >= 200 && res.StatusCode <= 299
}

// JSON sends r and decodes the response body into out, when out is not nil.
func (c *Client) JSON(ctx context.Context, r Request, out interface{}) error {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.Do(ctx, r)
	if err != nil {
		return err
	}

	if out == nil {
		res.Body.Close()
		return nil
	}

	if err := internal.DecodeJSON(res.Body, out); err != nil {
		return errors.New(fmt.Sprintf("could not decode %s %s response", r.Method, r.Path), errors.WithCause(err))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	u := c.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	contentType := r.ContentType
	switch {
	case r.Raw != nil:
		body = r.Raw
	case r.Body != nil:
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(r.Body); err != nil {
			return nil, errors.New("could not encode request body", errors.WithCause(err))
		}
		body = buf
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, errors.New("could not build request", errors.WithCause(err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Message is the common `{"message": ...}` answer of write endpoints.
type Message struct {
	Message string `json:"message"`
}

// StaticToken is a TokenSource always answering the same token.
type StaticToken string

func (t StaticToken) Token() (string, bool) {
	return string(t), t != ""
}
