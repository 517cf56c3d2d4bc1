// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import (
	"fmt"

	"github.com/netdata/jmx.d.plugin/agent/module"
	"github.com/netdata/jmx.d.plugin/pkg/jmxbean"
)

// collect runs one full collection: plan the queries, take a bean
// snapshot, join readings with declarations and extract values. Failures
// of individual declarations, beans or attributes are accumulated and
// returned alongside the metrics that did collect; nothing aborts the
// batch. The error list is ordered: declaration parse errors first, then
// discovery errors, then extraction errors.
func (j *JMX) collect() ([]module.Metric, []error) {
	plan := newQueryPlan(j.Metrics)

	results, queryErr := j.client.QueryBeans(plan.templateAttrs)

	var metrics []module.Metric
	var discoveryErrs, extractErrs []error

	if queryErr != nil {
		discoveryErrs = append(discoveryErrs, fmt.Errorf("%w: %v", errDiscovery, queryErr))
	}

	for _, res := range results {
		switch {
		case res.Reading != nil && res.Err != nil:
			discoveryErrs = append(discoveryErrs,
				fmt.Errorf("%w: query '%s' produced both a reading and an error", errInconsistent, res.Pattern))
			continue
		case res.Reading == nil && res.Err == nil:
			discoveryErrs = append(discoveryErrs,
				fmt.Errorf("%w: query '%s' produced neither a reading nor an error", errInconsistent, res.Pattern))
			continue
		case res.Err != nil:
			discoveryErrs = append(discoveryErrs, fmt.Errorf("%w: query '%s': %v", errDiscovery, res.Pattern, res.Err))
			continue
		}

		concrete, err := jmxbean.Parse(res.Reading.Name)
		if err != nil {
			discoveryErrs = append(discoveryErrs,
				fmt.Errorf("%w: query '%s' returned unparsable bean name: %v", errDiscovery, res.Pattern, err))
			continue
		}

		meta, ok := plan.templates.Resolve(concrete)
		if !ok {
			// the bean matches no declared template: dropped, not an error
			j.Debugf("bean '%s' resolves to no declared metric, dropping", res.Reading.Name)
			continue
		}

		for _, decl := range plan.parsed {
			if decl.metricName != meta.MetricName {
				continue
			}
			for _, attr := range decl.attrs {
				for _, reading := range res.Reading.Attributes {
					if reading.Name != attr.Name {
						continue
					}
					mx, errs := j.extractValues(decl.metricName, attr, reading.Value, meta.Tags)
					metrics = append(metrics, mx...)
					extractErrs = append(extractErrs, errs...)
				}
			}
		}
	}

	errs := make([]error, 0, len(plan.parseErrs)+len(discoveryErrs)+len(extractErrs))
	errs = append(errs, plan.parseErrs...)
	errs = append(errs, discoveryErrs...)
	errs = append(errs, extractErrs...)

	return metrics, errs
}
