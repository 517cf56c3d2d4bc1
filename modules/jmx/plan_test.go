// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import (
	"testing"

	"github.com/netdata/jmx.d.plugin/agent/module"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryPlan(t *testing.T) {
	decls := []MetricConfig{
		{
			Name:    "threads",
			Pattern: "java.lang:type=Threading",
			Attributes: []AttributeConfig{
				{Name: "ThreadCount", Type: module.TypeGauge},
				{Name: "PeakThreadCount", Type: module.TypeGauge},
			},
		},
		{
			Name:    "gc",
			Pattern: "java.lang:type=GarbageCollector,name=*",
			Attributes: []AttributeConfig{
				{Name: "CollectionCount", Type: module.TypeCounter},
			},
		},
	}

	plan := newQueryPlan(decls)

	assert.Empty(t, plan.parseErrs)
	assert.Equal(t, map[string][]string{
		"java.lang:type=Threading":               {"ThreadCount", "PeakThreadCount"},
		"java.lang:type=GarbageCollector,name=*": {"CollectionCount"},
	}, plan.templateAttrs)

	require.Len(t, plan.parsed, 2)
	assert.Equal(t, "threads", plan.parsed[0].metricName)
	assert.Equal(t, "gc", plan.parsed[1].metricName)
	assert.Equal(t, 2, plan.templates.Len())
}

func TestNewQueryPlan_MalformedPattern(t *testing.T) {
	decls := []MetricConfig{
		{
			Name:       "broken",
			Pattern:    "no-separator",
			Attributes: []AttributeConfig{{Name: "A", Type: module.TypeGauge}},
		},
		{
			Name:       "threads",
			Pattern:    "java.lang:type=Threading",
			Attributes: []AttributeConfig{{Name: "ThreadCount", Type: module.TypeGauge}},
		},
	}

	plan := newQueryPlan(decls)

	// the malformed declaration is recorded and excluded, the valid one survives
	require.Len(t, plan.parseErrs, 1)
	assert.ErrorIs(t, plan.parseErrs[0], errMalformedPattern)

	require.Len(t, plan.parsed, 1)
	assert.Equal(t, "threads", plan.parsed[0].metricName)
	assert.Len(t, plan.templateAttrs, 1)
}

func TestNewQueryPlan_DuplicateAttributes(t *testing.T) {
	decls := []MetricConfig{
		{
			Name:    "threads",
			Pattern: "java.lang:type=Threading",
			Attributes: []AttributeConfig{
				{Name: "ThreadCount", Type: module.TypeGauge},
				{Name: "ThreadCount", Type: module.TypeGauge},
			},
		},
	}

	plan := newQueryPlan(decls)

	assert.Equal(t, []string{"ThreadCount"}, plan.templateAttrs["java.lang:type=Threading"])
}

func TestNewQueryPlan_Empty(t *testing.T) {
	plan := newQueryPlan(nil)

	assert.Empty(t, plan.parseErrs)
	assert.Empty(t, plan.parsed)
	assert.Empty(t, plan.templateAttrs)
	assert.Equal(t, 0, plan.templates.Len())
}
