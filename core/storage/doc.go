// Package storage provides the S3-compatible client used to archive
// reconciliation reports.
//
// The Client interface wraps the subset of Minio operations the archive
// needs, allowing handlers and the report assembler to be tested against
// the mocks subpackage.
package storage
