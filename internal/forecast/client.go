package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultBaseURL is where the Forecast Service listens by default.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Client implements Source over HTTP using resty.
type Client struct {
	http    *resty.Client
	timeout time.Duration
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the underlying resty client. Used by tests.
func WithHTTPClient(rc *resty.Client) ClientOption {
	return func(c *Client) {
		if rc != nil {
			c.http = rc
		}
	}
}

// NewClient creates a Client for the service at baseURL.
// Retries are disabled: a retry is only ever user-initiated.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		http:    resty.New(),
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(slogAdapter{c.logger})

	return c
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// DataInfo retrieves column statistics and the dataframe info dump.
func (c *Client) DataInfo(ctx context.Context) (*DataInfo, error) {
	body, err := c.get(ctx, EndpointDataInfo, nil)
	if err != nil {
		return nil, err
	}
	info, err := DecodeDataInfo(body)
	if err != nil {
		return nil, &ParseError{Endpoint: EndpointDataInfo, Err: err}
	}
	return info, nil
}

// Preview retrieves the first rowLimit records of the dataset.
func (c *Client) Preview(ctx context.Context, rowLimit int) (*Preview, error) {
	params := map[string]string{"row_limit": strconv.Itoa(rowLimit)}
	body, err := c.get(ctx, EndpointFetchDataset, params)
	if err != nil {
		return nil, err
	}
	preview, err := DecodePreview(body)
	if err != nil {
		return nil, &ParseError{Endpoint: EndpointFetchDataset, Err: err}
	}
	return preview, nil
}

// Energy retrieves the daily power consumption series.
func (c *Client) Energy(ctx context.Context) (*RawSeries, error) {
	body, err := c.get(ctx, EndpointPlotEnergy, nil)
	if err != nil {
		return nil, err
	}
	series, err := DecodeSeries(body)
	if err != nil {
		return nil, &ParseError{Endpoint: EndpointPlotEnergy, Err: err}
	}
	return series, nil
}

// Forecast retrieves the bundle for one model.
func (c *Client) Forecast(ctx context.Context, model Model) (*ForecastBundle, error) {
	if !model.Valid() {
		return nil, fmt.Errorf("unknown model %q", model)
	}
	endpoint := ModelEndpoint(model)
	body, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	bundle, err := DecodeForecastBundle(model, body)
	if err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}
	return bundle, nil
}

// Decomposition retrieves the seasonal decomposition.
func (c *Client) Decomposition(ctx context.Context) (*DecompositionBundle, error) {
	body, err := c.get(ctx, EndpointDecomposition, nil)
	if err != nil {
		return nil, err
	}
	d, err := DecodeDecomposition(body)
	if err != nil {
		return nil, &ParseError{Endpoint: EndpointDecomposition, Err: err}
	}
	return d, nil
}

// get issues one GET and classifies transport and status failures.
func (c *Client) get(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	req := c.http.R().SetContext(ctx)
	for k, v := range params {
		req.SetQueryParam(k, v)
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		c.logger.Debug("forecast request failed", "endpoint", endpoint, "error", err)
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}

	c.logger.Debug("forecast request complete",
		"endpoint", endpoint,
		"status", resp.StatusCode(),
		"bytes", len(resp.Body()),
		"duration", time.Since(start))

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Body:       truncateBody(resp.Body(), 200),
		}
	}
	return resp.Body(), nil
}

// truncateBody shortens an error body for display.
func truncateBody(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}

// slogAdapter routes resty's internal logging through slog.
type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) Errorf(format string, v ...interface{}) {
	a.l.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (a slogAdapter) Warnf(format string, v ...interface{}) {
	a.l.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (a slogAdapter) Debugf(format string, v ...interface{}) {
	a.l.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
