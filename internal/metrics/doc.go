// Package metrics implements the in-process counter set for the auth
// client. Counters are fixed-size atomics indexed by MetricID; when metrics
// are disabled every operation is a no-op so the hot request path pays a
// single nil/flag check.
//
// The root package re-exports the IDs and snapshot type;
// metrics/export bridges snapshots into external systems.
package metrics
