package shopify

// Config holds configuration for the Shopify Admin API client.
type Config struct {
	// Domain is the myshopify domain of the shop (e.g., "demo.myshopify.com").
	Domain string `mapstructure:"domain" default:""`
	// AccessToken is the Admin API access token.
	AccessToken string `mapstructure:"access_token" default:""`
	// ApiVersion is the Admin API version to call.
	ApiVersion string `mapstructure:"api_version" default:"2024-01"`
	// TimeoutSeconds is the request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Credentials identifies one shop for order lookups.
type Credentials struct {
	// Domain is the myshopify domain of the shop.
	Domain string
	// AccessToken is the Admin API access token for that shop.
	AccessToken string
}

// Credentials returns the credentials for the configured shop.
func (c Config) Credentials() Credentials {
	return Credentials{Domain: c.Domain, AccessToken: c.AccessToken}
}
