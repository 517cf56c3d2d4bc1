// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.NotNil(t, New())
}

func TestLogger_NilReceiver(t *testing.T) {
	var l *Logger

	assert.NotPanics(t, func() {
		l.Error("error")
		l.Warningf("warning %d", 1)
		l.Info("info")
		l.Debug("debug")
	})
	assert.NotNil(t, l.With("key", "value"))
}

func TestDefaultLogger(t *testing.T) {
	assert.NotNil(t, defaultLogger)

	assert.NotPanics(t, func() {
		Error("error")
		Warning("warning")
		Info("info")
		Debug("debug")
		Errorf("error %s", "fmt")
		Warningf("warning %s", "fmt")
		Infof("info %s", "fmt")
		Debugf("debug %s", "fmt")
	})
	assert.NotNil(t, With("key", "value"))
}
