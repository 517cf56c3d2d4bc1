// SPDX-License-Identifier: GPL-3.0-or-later

package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	registry := Registry{}

	// OK case
	assert.NotPanics(t, func() {
		registry.Register("mock", Creator{Create: func() Module { return &MockModule{} }})
	})
	_, ok := registry.Lookup("mock")
	assert.True(t, ok)

	// duplicate name panics
	assert.Panics(t, func() {
		registry.Register("mock", Creator{Create: func() Module { return &MockModule{} }})
	})
}

func TestMetricType_Valid(t *testing.T) {
	for _, typ := range []MetricType{TypeCounter, TypeGauge, TypeHistogram, TypeSummary} {
		assert.Truef(t, typ.Valid(), "type '%s'", typ)
	}
	assert.False(t, MetricType("meter").Valid())
	assert.False(t, MetricType("").Valid())
}
