// SPDX-License-Identifier: GPL-3.0-or-later

package module

// MetricType describes how a metric value should be interpreted by the
// metrics backend.
type MetricType string

const (
	TypeCounter   MetricType = "counter"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
	TypeSummary   MetricType = "summary"
)

// Valid reports whether the metric type is one of the known types.
func (t MetricType) Valid() bool {
	switch t {
	case TypeCounter, TypeGauge, TypeHistogram, TypeSummary:
		return true
	}
	return false
}

// Metric is a single named, tagged, typed value produced by a collection.
type Metric struct {
	Name  string
	Value int64
	Tags  map[string]string
	Type  MetricType
}
