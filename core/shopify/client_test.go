package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) (*Client, Credentials) {
	c := &Client{
		http:       srv.Client(),
		apiVersion: "2024-01",
		scheme:     "http",
	}
	creds := Credentials{
		Domain:      strings.TrimPrefix(srv.URL, "http://"),
		AccessToken: "test-token",
	}
	return c, creds
}

func TestFetchOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "paid", r.URL.Query().Get("financial_status"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orders":[
			{"id":5479611433128,"name":"#1001","total_price":"100.00","currency":"USD","created_at":"2026-08-01T10:00:00Z","financial_status":"paid"},
			{"id":5479611433129,"name":"#1002","total_price":"0.00","currency":"USD","created_at":"2026-08-01T11:00:00Z","financial_status":"paid"}
		]}`))
	}))
	defer srv.Close()

	c, creds := testClient(srv)
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	orders, err := c.FetchOrders(context.Background(), creds, from, to, 50)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "5479611433128", orders[0].OrderID)
	assert.Equal(t, "#1001", orders[0].OrderNumber)
	assert.Equal(t, "100", orders[0].Value.String())
	assert.Equal(t, "USD", orders[0].Currency)
	assert.Equal(t, "paid", orders[0].FinancialStatus)

	// Zero-value order (100% discount) must parse, not be dropped
	assert.True(t, orders[1].Value.IsZero())
}

func TestFetchOrders_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders":[{"id":1,"total_price":"not-a-number"}]}`))
	}))
	defer srv.Close()

	c, creds := testClient(srv)
	_, err := c.FetchOrders(context.Background(), creds, time.Now().Add(-time.Hour), time.Now(), 10)
	assert.Error(t, err)
}

func TestFetchOrder_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, creds := testClient(srv)
	order, err := c.FetchOrder(context.Background(), creds, "12345")
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestFetchOrder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, creds := testClient(srv)
	_, err := c.FetchOrder(context.Background(), creds, "12345")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
