// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import (
	"errors"
	"fmt"

	"github.com/netdata/jmx.d.plugin/agent/module"
	"github.com/netdata/jmx.d.plugin/pkg/web"
)

func (j *JMX) validateConfig() error {
	if j.URL == "" {
		return errors.New("'url' is not set")
	}
	if len(j.Metrics) == 0 {
		return errors.New("'metrics' list is empty")
	}

	for i, m := range j.Metrics {
		if m.Name == "" {
			return fmt.Errorf("metric #%d: 'name' is not set", i+1)
		}
		if m.Pattern == "" {
			return fmt.Errorf("metric '%s': 'pattern' is not set", m.Name)
		}
		if len(m.Attributes) == 0 {
			return fmt.Errorf("metric '%s': 'attributes' list is empty", m.Name)
		}
		for _, a := range m.Attributes {
			if a.Name == "" {
				return fmt.Errorf("metric '%s': attribute 'name' is not set", m.Name)
			}
			if a.Type != "" && !a.Type.Valid() {
				return fmt.Errorf("metric '%s': attribute '%s': unknown metric type '%s'", m.Name, a.Name, a.Type)
			}
		}
	}

	return nil
}

func (j *JMX) applyDefaults() {
	for i, m := range j.Metrics {
		for k, a := range m.Attributes {
			if a.Type == "" {
				j.Metrics[i].Attributes[k].Type = module.TypeGauge
			}
		}
	}
}

func (j *JMX) initJmxClient() (jmxClient, error) {
	client, err := web.NewHTTPClient(j.Client)
	if err != nil {
		return nil, err
	}
	return newJolokiaClient(client, j.Request), nil
}
