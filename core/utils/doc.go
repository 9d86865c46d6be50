// Package utils holds small conversion helpers for loosely-typed pixel
// payload data, where values may arrive as strings, floats or ints
// depending on the client that captured the event.
package utils
