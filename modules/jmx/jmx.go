// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import (
	_ "embed"
	"time"

	"github.com/netdata/jmx.d.plugin/agent/module"
	"github.com/netdata/jmx.d.plugin/pkg/web"
)

//go:embed "config_schema.json"
var configSchema string

func init() {
	module.Register("jmx", module.Creator{
		JobConfigSchema: configSchema,
		Defaults: module.Defaults{
			UpdateEvery: 5,
		},
		Create: func() module.Module { return New() },
	})
}

func New() *JMX {
	return &JMX{
		Config: Config{
			HTTP: web.HTTP{
				Request: web.Request{
					URL: "http://127.0.0.1:8778/jolokia",
				},
				Client: web.Client{
					Timeout: web.Duration{Duration: time.Second * 5},
				},
			},
		},
	}
}

type (
	// Config is the JMX module configuration.
	Config struct {
		web.HTTP    `yaml:",inline"`
		UpdateEvery int            `yaml:"update_every"`
		Metrics     []MetricConfig `yaml:"metrics"`
	}

	// MetricConfig declares one logical metric: an MBean object name
	// pattern and the attributes to read from the beans it matches.
	MetricConfig struct {
		Name       string            `yaml:"name"`
		Pattern    string            `yaml:"pattern"`
		Attributes []AttributeConfig `yaml:"attributes"`
	}

	// AttributeConfig declares one attribute to read. Keys select the
	// numeric fields to extract when the attribute value is composite,
	// one metric per key.
	AttributeConfig struct {
		Name string            `yaml:"name"`
		Type module.MetricType `yaml:"type"`
		Keys []string          `yaml:"keys"`
	}
)

// JMX collects MBean attribute values through a Jolokia agent and turns
// them into named, tagged, typed metrics.
type JMX struct {
	module.Base
	Config `yaml:",inline"`

	client jmxClient
}

func (j *JMX) Configuration() any {
	return j.Config
}

func (j *JMX) Init() error {
	if err := j.validateConfig(); err != nil {
		j.Errorf("config validation: %v", err)
		return err
	}
	j.applyDefaults()

	client, err := j.initJmxClient()
	if err != nil {
		j.Errorf("init jolokia client: %v", err)
		return err
	}
	j.client = client

	plan := newQueryPlan(j.Metrics)
	for _, err := range plan.parseErrs {
		j.Warningf("metric declaration skipped: %v", err)
	}

	return nil
}

func (j *JMX) Check() error {
	mx, errs := j.collect()
	for _, err := range errs {
		j.Warning(err)
	}
	if len(mx) == 0 {
		return errNoMetrics
	}
	return nil
}

func (j *JMX) Collect() ([]module.Metric, []error) {
	return j.collect()
}

func (j *JMX) Cleanup() {
	if j.client != nil {
		j.client.Close()
	}
}
