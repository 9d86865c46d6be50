// Package middleware groups the Fiber middleware used by the HTTP server:
// ray-id assignment for request correlation and API key authentication.
package middleware
