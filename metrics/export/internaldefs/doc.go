// Package internaldefs holds the shared metric naming table used by the
// export bridges. It exists so exporters agree on instrument names without
// duplicating the MetricID-to-name mapping.
package internaldefs
