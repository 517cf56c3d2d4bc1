// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/netdata/jmx.d.plugin/agent/module"
)

// generateMetricName builds the fully qualified metric name. The key part
// is present only for values extracted from composite attributes.
func generateMetricName(metricName, attrName, key string) string {
	if key == "" {
		return "jmx-" + metricName + "-" + attrName
	}
	return "jmx-" + metricName + "-" + attrName + "-" + key
}

// extractValues converts one raw attribute value into metrics. A scalar
// value produces one metric; a composite value produces one metric or one
// error per configured key. A composite value with no configured keys
// produces nothing (the attribute is considered not requested for
// extraction).
func (j *JMX) extractValues(metricName string, attr AttributeConfig, value any, tags map[string]string) ([]module.Metric, []error) {
	composite, ok := value.(map[string]any)
	if !ok {
		v, ok := asInt64(value)
		if !ok {
			return nil, []error{fmt.Errorf("%w: attribute '%s': '%v' (%T) is not numeric", errInvalidValue, attr.Name, value, value)}
		}
		return []module.Metric{{
			Name:  generateMetricName(metricName, attr.Name, ""),
			Value: v,
			Tags:  tags,
			Type:  attr.Type,
		}}, nil
	}

	if len(attr.Keys) == 0 {
		j.Warningf("attribute '%s' of metric '%s' has a composite value but no keys configured, skipping", attr.Name, metricName)
		return nil, nil
	}

	var mx []module.Metric
	var errs []error
	for _, key := range attr.Keys {
		v, ok := asInt64(composite[key])
		if !ok {
			errs = append(errs, fmt.Errorf("%w: attribute '%s' key '%s': '%v' is not numeric", errInvalidValue, attr.Name, key, composite[key]))
			continue
		}
		mx = append(mx, module.Metric{
			Name:  generateMetricName(metricName, attr.Name, key),
			Value: v,
			Tags:  tags,
			Type:  attr.Type,
		})
	}

	return mx, errs
}

// asInt64 coerces a raw attribute value to int64. It accepts any integer
// width, floats (truncated) and json.Number; values outside the int64
// range, NaN and infinities are rejected like any non numeric value.
func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt64(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, out of the int64 range
	if f >= float64(math.MaxInt64) || f < float64(math.MinInt64) {
		return 0, false
	}
	return int64(f), true
}
