// SPDX-License-Identifier: GPL-3.0-or-later

package module

import (
	"github.com/netdata/jmx.d.plugin/logger"
)

// Module is an interface that represents a module.
type Module interface {
	// Init does initialization.
	// If it returns an error, the job will be disabled.
	Init() error

	// Check is called after Init.
	// If it returns an error, the job will be disabled.
	Check() error

	// Collect collects metrics. Collection failures are returned alongside
	// the successfully collected metrics, one error per failed unit of work.
	Collect() ([]Metric, []error)

	// Cleanup performs cleanup if needed.
	Cleanup()

	GetBase() *Base

	Configuration() any
}

// Base is a helper struct. All modules should embed this struct.
type Base struct {
	*logger.Logger
}

func (b *Base) GetBase() *Base { return b }
