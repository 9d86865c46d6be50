// Package database provides the MySQL connection used by the tracking store.
//
// The connection is established through GORM with conservative pool limits and
// explicit connect/read/write timeouts in the DSN, and is verified with a ping
// before being handed to callers.
package database
