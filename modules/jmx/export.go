// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import "github.com/netdata/jmx.d.plugin/agent/module"

// MetricDefinitions derives the fully qualified metric name to metric
// type mapping from the declarations alone, without querying anything.
// Collaborators use it to pre-register metric types before any value is
// observed.
func MetricDefinitions(decls []MetricConfig) map[string]module.MetricType {
	defs := make(map[string]module.MetricType)

	for _, d := range decls {
		for _, a := range d.Attributes {
			if len(a.Keys) == 0 {
				defs[generateMetricName(d.Name, a.Name, "")] = a.Type
				continue
			}
			for _, key := range a.Keys {
				defs[generateMetricName(d.Name, a.Name, key)] = a.Type
			}
		}
	}

	return defs
}
