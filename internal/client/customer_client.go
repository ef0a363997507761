package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"transferbff/internal/errors"
	"transferbff/internal/telemetry"
)

const existsPath = "/api/v1/customer/%d/exists"

// CustomerDirectory answers whether a customer exists.
// Implementations return an error wrapping errors.ErrCustomerServiceUnavailable
// when they cannot answer, never false.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID int64) (bool, error)
}

// CustomerClient calls the remote customer service over HTTP.
type CustomerClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Ensure CustomerClient implements CustomerDirectory
var _ CustomerDirectory = (*CustomerClient)(nil)

// NewCustomerClient creates a client for the customer service at baseURL.
func NewCustomerClient(baseURL string, timeout time.Duration) *CustomerClient {
	return &CustomerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Exists asks the customer service whether customerID exists.
func (c *CustomerClient) Exists(ctx context.Context, customerID int64) (bool, error) {
	ctx, span := otel.Tracer("transferbff/client").Start(ctx, "CustomerClient.Exists")
	defer span.End()
	span.SetAttributes(attribute.Int64("customer.id", customerID))

	start := time.Now()
	exists, err := c.exists(ctx, customerID)

	outcome := "found"
	switch {
	case err != nil:
		outcome = "unavailable"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !exists:
		outcome = "not_found"
	}
	telemetry.CustomerDirectoryDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return exists, err
}

func (c *CustomerClient) exists(ctx context.Context, customerID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + fmt.Sprintf(existsPath, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("%w: build request: %v", errors.ErrCustomerServiceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errors.ErrCustomerServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, fmt.Errorf("%w: status %d", errors.ErrCustomerServiceUnavailable, resp.StatusCode)
	}

	var exists bool
	if err := json.NewDecoder(resp.Body).Decode(&exists); err != nil {
		return false, fmt.Errorf("%w: decode response: %v", errors.ErrCustomerServiceUnavailable, err)
	}
	return exists, nil
}
