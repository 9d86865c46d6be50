// Package config assembles the application configuration from environment
// variables and an optional .env file.
//
// Each subsystem defines its own partial Config struct next to the code it
// configures; this package composes them and binds defaults declared through
// the `default:` struct tag. Environment variables map onto nested keys with
// underscores (SHOPIFY_ACCESS_TOKEN -> shopify.access_token).
package config
