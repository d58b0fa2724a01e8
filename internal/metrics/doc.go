// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Transaction throughput by type and failure reason
//   - Parse errors skipped at the ingestion boundary
//   - Account creation and lock counts
package metrics
