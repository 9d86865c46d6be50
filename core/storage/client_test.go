package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{"Bare Endpoint", "localhost:9000"},
		{"HTTP Scheme", "http://localhost:9000"},
		{"HTTPS Scheme", "https://storage.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Endpoint:  tt.endpoint,
				AccessKey: "key",
				SecretKey: "secret",
			}

			// Connection is lazy, so construction must succeed for any
			// well-formed endpoint regardless of reachability.
			client, err := NewClient(cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
