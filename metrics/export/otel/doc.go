// Package otel bridges the client's counter snapshots into OpenTelemetry
// observable instruments. Registration is pull-based: values are read from
// the source on every collection, so the hot request path never touches the
// meter.
package otel
