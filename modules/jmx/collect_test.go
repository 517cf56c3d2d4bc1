// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import (
	"errors"
	"testing"

	"github.com/netdata/jmx.d.plugin/agent/module"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockJmxClient struct {
	queryFunc   func(queries map[string][]string) ([]beanResult, error)
	lastQueries map[string][]string
	closeCalled bool
}

func (m *mockJmxClient) QueryBeans(queries map[string][]string) ([]beanResult, error) {
	m.lastQueries = queries
	if m.queryFunc == nil {
		return nil, nil
	}
	return m.queryFunc(queries)
}

func (m *mockJmxClient) Close() { m.closeCalled = true }

func prepareJMX(config Config, client jmxClient) *JMX {
	j := New()
	j.Config = config
	j.client = client
	return j
}

func threadsConfig() Config {
	return Config{
		Metrics: []MetricConfig{
			{
				Name:    "threads",
				Pattern: "java.lang:type=Threading",
				Attributes: []AttributeConfig{
					{Name: "ThreadCount", Type: module.TypeGauge},
				},
			},
		},
	}
}

func threadsReading(value any) []beanResult {
	return []beanResult{
		{
			Pattern: "java.lang:type=Threading",
			Reading: &beanReading{
				Name:       "java.lang:type=Threading",
				Attributes: []beanAttribute{{Name: "ThreadCount", Value: value}},
			},
		},
	}
}

func TestJMX_collect(t *testing.T) {
	tests := map[string]struct {
		config   Config
		results  []beanResult
		queryErr error
		wantMx   []module.Metric
		wantErrs []error
	}{
		"exact declaration, scalar value": {
			config:  threadsConfig(),
			results: threadsReading(42),
			wantMx: []module.Metric{
				{Name: "jmx-threads-ThreadCount", Value: 42, Tags: map[string]string{}, Type: module.TypeGauge},
			},
		},
		"non numeric value yields one error and no metrics": {
			config:   threadsConfig(),
			results:  threadsReading("N/A"),
			wantErrs: []error{errInvalidValue},
		},
		"malformed declaration does not stop the valid ones": {
			config: Config{
				Metrics: []MetricConfig{
					{
						Name:       "broken",
						Pattern:    "no-separator",
						Attributes: []AttributeConfig{{Name: "A", Type: module.TypeGauge}},
					},
					threadsConfig().Metrics[0],
				},
			},
			results: threadsReading(42),
			wantMx: []module.Metric{
				{Name: "jmx-threads-ThreadCount", Value: 42, Tags: map[string]string{}, Type: module.TypeGauge},
			},
			wantErrs: []error{errMalformedPattern},
		},
		"wildcard template tags the concrete values": {
			config: Config{
				Metrics: []MetricConfig{
					{
						Name:    "gc",
						Pattern: "java.lang:type=GarbageCollector,name=*",
						Attributes: []AttributeConfig{
							{Name: "CollectionCount", Type: module.TypeCounter},
						},
					},
				},
			},
			results: []beanResult{
				{
					Pattern: "java.lang:type=GarbageCollector,name=*",
					Reading: &beanReading{
						Name:       "java.lang:type=GarbageCollector,name=G1 Young Generation",
						Attributes: []beanAttribute{{Name: "CollectionCount", Value: 17}},
					},
				},
			},
			wantMx: []module.Metric{
				{
					Name:  "jmx-gc-CollectionCount",
					Value: 17,
					Tags:  map[string]string{"type": "GarbageCollector", "name": "G1 Young Generation"},
					Type:  module.TypeCounter,
				},
			},
		},
		"composite value with one absent key": {
			config: Config{
				Metrics: []MetricConfig{
					{
						Name:    "heap",
						Pattern: "java.lang:type=Memory",
						Attributes: []AttributeConfig{
							{Name: "HeapMemoryUsage", Type: module.TypeGauge, Keys: []string{"used", "max", "nope"}},
						},
					},
				},
			},
			results: []beanResult{
				{
					Pattern: "java.lang:type=Memory",
					Reading: &beanReading{
						Name: "java.lang:type=Memory",
						Attributes: []beanAttribute{
							{Name: "HeapMemoryUsage", Value: map[string]any{"used": 1024, "max": 4096}},
						},
					},
				},
			},
			wantMx: []module.Metric{
				{Name: "jmx-heap-HeapMemoryUsage-used", Value: 1024, Tags: map[string]string{}, Type: module.TypeGauge},
				{Name: "jmx-heap-HeapMemoryUsage-max", Value: 4096, Tags: map[string]string{}, Type: module.TypeGauge},
			},
			wantErrs: []error{errInvalidValue},
		},
		"per pattern discovery error does not stop other readings": {
			config: Config{
				Metrics: []MetricConfig{
					threadsConfig().Metrics[0],
					{
						Name:       "memory",
						Pattern:    "java.lang:type=Memory",
						Attributes: []AttributeConfig{{Name: "ObjectPendingFinalizationCount", Type: module.TypeGauge}},
					},
				},
			},
			results: append(threadsReading(42), beanResult{
				Pattern: "java.lang:type=Memory",
				Err:     errors.New("bean not found"),
			}),
			wantMx: []module.Metric{
				{Name: "jmx-threads-ThreadCount", Value: 42, Tags: map[string]string{}, Type: module.TypeGauge},
			},
			wantErrs: []error{errDiscovery},
		},
		"result with both reading and error is an inconsistency": {
			config: threadsConfig(),
			results: []beanResult{
				{
					Pattern: "java.lang:type=Threading",
					Reading: &beanReading{Name: "java.lang:type=Threading"},
					Err:     errors.New("boom"),
				},
			},
			wantErrs: []error{errInconsistent},
		},
		"result with neither reading nor error is an inconsistency": {
			config: threadsConfig(),
			results: []beanResult{
				{Pattern: "java.lang:type=Threading"},
			},
			wantErrs: []error{errInconsistent},
		},
		"unmatched bean is dropped without error": {
			config: threadsConfig(),
			results: []beanResult{
				{
					Pattern: "java.lang:type=Threading",
					Reading: &beanReading{
						Name:       "java.nio:type=BufferPool,name=direct",
						Attributes: []beanAttribute{{Name: "ThreadCount", Value: 1}},
					},
				},
			},
		},
		"unparsable bean name is a discovery error": {
			config: threadsConfig(),
			results: []beanResult{
				{
					Pattern: "java.lang:type=Threading",
					Reading: &beanReading{Name: "garbage"},
				},
			},
			wantErrs: []error{errDiscovery},
		},
		"snapshot failure is a discovery error": {
			config:   threadsConfig(),
			queryErr: errors.New("connection refused"),
			wantErrs: []error{errDiscovery},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			client := &mockJmxClient{
				queryFunc: func(map[string][]string) ([]beanResult, error) {
					return test.results, test.queryErr
				},
			}
			j := prepareJMX(test.config, client)

			mx, errs := j.collect()

			assert.Equal(t, test.wantMx, mx)
			require.Len(t, errs, len(test.wantErrs))
			for i, want := range test.wantErrs {
				assert.ErrorIs(t, errs[i], want)
			}
		})
	}
}

func TestJMX_collectErrorOrder(t *testing.T) {
	// parse errors come first, then discovery errors, then extraction errors
	config := Config{
		Metrics: []MetricConfig{
			{
				Name:       "broken",
				Pattern:    "no-separator",
				Attributes: []AttributeConfig{{Name: "A", Type: module.TypeGauge}},
			},
			threadsConfig().Metrics[0],
			{
				Name:       "memory",
				Pattern:    "java.lang:type=Memory",
				Attributes: []AttributeConfig{{Name: "Verbose", Type: module.TypeGauge}},
			},
		},
	}
	results := []beanResult{
		{Pattern: "java.lang:type=Memory", Err: errors.New("bean not found")},
		{
			Pattern: "java.lang:type=Threading",
			Reading: &beanReading{
				Name:       "java.lang:type=Threading",
				Attributes: []beanAttribute{{Name: "ThreadCount", Value: "N/A"}},
			},
		},
	}

	j := prepareJMX(config, &mockJmxClient{
		queryFunc: func(map[string][]string) ([]beanResult, error) { return results, nil },
	})

	_, errs := j.collect()

	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], errMalformedPattern)
	assert.ErrorIs(t, errs[1], errDiscovery)
	assert.ErrorIs(t, errs[2], errInvalidValue)
}

func TestJMX_collectRequestsPlannedAttributes(t *testing.T) {
	config := Config{
		Metrics: []MetricConfig{
			{
				Name:    "threads",
				Pattern: "java.lang:type=Threading",
				Attributes: []AttributeConfig{
					{Name: "ThreadCount", Type: module.TypeGauge},
					{Name: "PeakThreadCount", Type: module.TypeGauge},
				},
			},
		},
	}
	client := &mockJmxClient{}
	j := prepareJMX(config, client)

	_, _ = j.collect()

	assert.Equal(t, map[string][]string{
		"java.lang:type=Threading": {"ThreadCount", "PeakThreadCount"},
	}, client.lastQueries)
}
