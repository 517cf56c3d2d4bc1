// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import (
	"fmt"
	"slices"

	"github.com/netdata/jmx.d.plugin/pkg/jmxbean"
)

type parsedDecl struct {
	metricName string
	template   jmxbean.Name
	attrs      []AttributeConfig
}

// queryPlan is everything derived from the metric declarations that a
// single collection needs: which attributes to request per template,
// which logical metric name each template resolves to, and the parsed
// declarations themselves. Declarations with unparsable patterns are
// recorded in parseErrs and excluded from the rest of the plan.
type queryPlan struct {
	templates     *jmxbean.Templates
	templateAttrs map[string][]string
	parsed        []parsedDecl
	parseErrs     []error
}

func newQueryPlan(decls []MetricConfig) *queryPlan {
	plan := &queryPlan{
		templates:     jmxbean.NewTemplates(),
		templateAttrs: make(map[string][]string),
	}

	for _, d := range decls {
		tpl, err := jmxbean.Parse(d.Pattern)
		if err != nil {
			plan.parseErrs = append(plan.parseErrs, fmt.Errorf("%w: metric '%s': %v", errMalformedPattern, d.Name, err))
			continue
		}

		canonical := tpl.String()
		plan.templates.Add(tpl, d.Name)

		for _, a := range d.Attributes {
			if !slices.Contains(plan.templateAttrs[canonical], a.Name) {
				plan.templateAttrs[canonical] = append(plan.templateAttrs[canonical], a.Name)
			}
		}

		plan.parsed = append(plan.parsed, parsedDecl{metricName: d.Name, template: tpl, attrs: d.Attributes})
	}

	return plan
}
