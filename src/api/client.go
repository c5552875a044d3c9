package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/itblio/itbl/src/callback"
	"github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/constants"
	"github.com/sirupsen/logrus"
)

// ClientConfig ...
type ClientConfig struct {
	APIKey     string
	Endpoint   string
	Platform   string
	SDKVersion string
	// Timeout bounds each request. Zero means no bound beyond the context.
	Timeout time.Duration
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Request ...
type Request struct {
	Method string
	// Path is resolved against the client endpoint.
	Path  string
	Query url.Values
	Body  map[string]interface{}
}

// Client sends requests to the API.
type Client struct {
	conf     ClientConfig
	endpoint *url.URL
	http     *http.Client
	logger   *logrus.Entry
}

// NewClient ...
func NewClient(conf ClientConfig, logger *logrus.Entry) (*Client, error) {
	endpoint, err := url.Parse(conf.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint %q: %w", conf.Endpoint, err)
	}
	if !endpoint.IsAbs() {
		return nil, fmt.Errorf("endpoint %q is not an absolute URL", conf.Endpoint)
	}
	// paths resolve below the endpoint, not next to it
	if !strings.HasSuffix(endpoint.Path, "/") {
		endpoint.Path += "/"
		if endpoint.RawPath != "" {
			endpoint.RawPath += "/"
		}
	}

	httpClient := conf.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	return &Client{
		conf:     conf,
		endpoint: endpoint,
		http:     httpClient,
		logger:   logger,
	}, nil
}

// Post sends body to path and delivers the outcome to the callbacks.
func (c *Client) Post(ctx context.Context, path string, body map[string]interface{}, onSuccess callback.OnSuccessHandler, onFailure callback.OnFailureHandler) {
	c.Send(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, onSuccess, onFailure)
}

// Get queries path and delivers the outcome to the callbacks.
func (c *Client) Get(ctx context.Context, path string, query url.Values, onSuccess callback.OnSuccessHandler, onFailure callback.OnFailureHandler) {
	c.Send(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, onSuccess, onFailure)
}

// Send is Do followed by Deliver.
func (c *Client) Send(ctx context.Context, req *Request, onSuccess callback.OnSuccessHandler, onFailure callback.OnFailureHandler) {
	data, err := c.Do(ctx, req)
	Deliver(data, err, onSuccess, onFailure)
}

// Do sends req and decodes the response. A successful response with an empty
// body yields a nil map and no error.
func (c *Client) Do(ctx context.Context, req *Request) (map[string]interface{}, error) {
	if c.conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.conf.Timeout)
		defer cancel()
	}

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, &Error{Reason: err.Error()}
	}

	logger := c.logger.WithFields(logrus.Fields{
		"method": httpReq.Method,
		"url":    httpReq.URL.String(),
	})
	logger.Debug("Sending request")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.WithError(err).Debug("Request failed")
		return nil, &Error{Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Reason: err.Error(), StatusCode: resp.StatusCode}
	}

	logger = logger.WithField("status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{
			Reason:     failureReason(resp.StatusCode, body),
			Data:       optionalData(body),
			StatusCode: resp.StatusCode,
		}
		logger.WithField("reason", apiErr.Reason).Debug("Request rejected")
		return nil, apiErr
	}

	if len(bytes.TrimSpace(body)) == 0 {
		logger.Debug("Request succeeded without payload")
		return nil, nil
	}

	data, err := common.DecodeJSONMap(body)
	if err != nil || data == nil {
		if err == nil {
			err = fmt.Errorf("response is null")
		}
		return nil, &Error{
			Reason:     ReasonParseJSON + err.Error(),
			Data:       body,
			StatusCode: resp.StatusCode,
		}
	}

	logger.Debug("Request succeeded")

	return data, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	ref, err := url.Parse(req.Path)
	if err != nil {
		return nil, err
	}

	u := c.endpoint.ResolveReference(ref)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := common.EncodeJSON(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set(constants.HeaderAPIKey, c.conf.APIKey)
	httpReq.Header.Set(constants.HeaderSDKVersion, c.conf.SDKVersion)
	httpReq.Header.Set(constants.HeaderSDKPlatform, c.conf.Platform)
	if body != nil {
		httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	return httpReq, nil
}

func failureReason(status int, body []byte) string {
	reason := reasonForStatus(status)

	if len(body) == 0 {
		return reason
	}

	m, err := common.DecodeJSONMap(body)
	if err != nil || m == nil {
		return reason
	}

	if msg, ok := common.StringValue(m, "msg"); ok && msg != "" {
		return fmt.Sprintf("%s: %s", reason, msg)
	}

	return reason
}

func optionalData(body []byte) []byte {
	if len(body) == 0 {
		return nil
	}
	return body
}
