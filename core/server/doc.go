// Package server holds the HTTP server configuration (listen port and the
// API key that protects every route).
package server
