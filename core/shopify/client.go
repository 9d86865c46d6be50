package shopify

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Order is the shop platform's own record of an order. It is the ground
// truth for existence, value and currency during reconciliation.
type Order struct {
	// OrderID is the canonical numeric order identifier.
	OrderID string `json:"order_id"`
	// OrderNumber is the display number shown to the merchant (e.g., "#1001").
	OrderNumber string `json:"order_number"`
	// Value is the total order value.
	Value decimal.Decimal `json:"value"`
	// Currency is the ISO currency code.
	Currency string `json:"currency"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
	// FinancialStatus is the payment status (paid, pending, refunded, ...).
	FinancialStatus string `json:"financial_status"`
}

// Source supplies authoritative order snapshots for a shop.
type Source interface {
	// FetchOrders returns paid orders created inside [from, to], capped at limit.
	FetchOrders(ctx context.Context, creds Credentials, from, to time.Time, limit int) ([]Order, error)
	// FetchOrder returns a single order by its numeric identifier,
	// or nil if the shop has no such order.
	FetchOrder(ctx context.Context, creds Credentials, orderID string) (*Order, error)
}

// Client is the Admin REST API implementation of Source.
type Client struct {
	http       *http.Client
	apiVersion string
	scheme     string
}

// restOrder mirrors the Admin API order payload, limited to the fields
// reconciliation needs.
type restOrder struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	TotalPrice      string `json:"total_price"`
	Currency        string `json:"currency"`
	CreatedAt       string `json:"created_at"`
	FinancialStatus string `json:"financial_status"`
}

// NewClient creates an Admin API client based on the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	apiVersion := cfg.ApiVersion
	if apiVersion == "" {
		apiVersion = "2024-01"
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
		apiVersion: apiVersion,
		scheme:     "https",
	}
}

// FetchOrders returns paid orders created inside the window.
func (c *Client) FetchOrders(ctx context.Context, creds Credentials, from, to time.Time, limit int) ([]Order, error) {
	if limit <= 0 || limit > 250 {
		limit = 250
	}

	q := url.Values{}
	q.Set("status", "any")
	q.Set("financial_status", "paid")
	q.Set("created_at_min", from.UTC().Format(time.RFC3339))
	q.Set("created_at_max", to.UTC().Format(time.RFC3339))
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("fields", "id,name,total_price,currency,created_at,financial_status")

	var payload struct {
		Orders []restOrder `json:"orders"`
	}
	if err := c.get(ctx, creds, "orders.json?"+q.Encode(), &payload); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(payload.Orders))
	for _, ro := range payload.Orders {
		order, err := ro.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// FetchOrder returns a single order by numeric identifier.
func (c *Client) FetchOrder(ctx context.Context, creds Credentials, orderID string) (*Order, error) {
	var payload struct {
		Order *restOrder `json:"order"`
	}
	err := c.get(ctx, creds, "orders/"+url.PathEscape(orderID)+".json", &payload)
	if err != nil {
		if errNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if payload.Order == nil {
		return nil, nil
	}
	order, err := payload.Order.toOrder()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// statusError carries the HTTP status of a failed Admin API call.
type statusError struct {
	status int
	path   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("shopify: %s returned status %d", e.path, e.status)
}

func errNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.status == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, creds Credentials, path string, out any) error {
	endpoint := fmt.Sprintf("%s://%s/admin/api/%s/%s", c.scheme, creds.Domain, c.apiVersion, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", creds.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &statusError{status: resp.StatusCode, path: path}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("shopify: read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("shopify: parse response: %w", err)
	}
	return nil
}

func (ro restOrder) toOrder() (Order, error) {
	value, err := decimal.NewFromString(ro.TotalPrice)
	if err != nil {
		return Order{}, fmt.Errorf("shopify: order %d has unparseable total_price %q: %w", ro.ID, ro.TotalPrice, err)
	}

	createdAt, err := time.Parse(time.RFC3339, ro.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("shopify: order %d has unparseable created_at %q: %w", ro.ID, ro.CreatedAt, err)
	}

	return Order{
		OrderID:         fmt.Sprintf("%d", ro.ID),
		OrderNumber:     ro.Name,
		Value:           value,
		Currency:        ro.Currency,
		CreatedAt:       createdAt,
		FinancialStatus: ro.FinancialStatus,
	}, nil
}
