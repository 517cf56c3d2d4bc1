// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"time"

	"github.com/netdata/jmx.d.plugin/agent/module"
	"github.com/netdata/jmx.d.plugin/logger"
	"github.com/netdata/jmx.d.plugin/pkg/openmetrics"
)

// Job runs one configured module instance: it initializes the module,
// verifies data collection works and then collects on every tick,
// forwarding the produced metrics to the output writer.
type Job struct {
	*logger.Logger

	Name               string
	ModuleName         string
	UpdateEvery        int
	AutoDetectionRetry int

	module module.Module
	out    *openmetrics.Writer
}

func (j *Job) Run(ctx context.Context) {
	if !j.detect(ctx) {
		return
	}
	defer j.module.Cleanup()

	j.Infof("started, data collection interval %ds", j.UpdateEvery)
	defer j.Info("stopped")

	tk := time.NewTicker(time.Duration(j.UpdateEvery) * time.Second)
	defer tk.Stop()

	j.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			j.collectOnce()
		}
	}
}

// detect initializes the module and verifies it can collect. A failed
// check is retried on the autodetection interval if one is configured.
func (j *Job) detect(ctx context.Context) bool {
	if err := j.module.Init(); err != nil {
		j.Errorf("init failed: %v", err)
		j.module.Cleanup()
		return false
	}

	for {
		err := j.module.Check()
		if err == nil {
			return true
		}

		if j.AutoDetectionRetry <= 0 {
			j.Errorf("check failed: %v", err)
			j.module.Cleanup()
			return false
		}

		j.Infof("check failed: %v, retry in %ds", err, j.AutoDetectionRetry)

		t := time.NewTimer(time.Duration(j.AutoDetectionRetry) * time.Second)
		select {
		case <-ctx.Done():
			t.Stop()
			j.module.Cleanup()
			return false
		case <-t.C:
		}
	}
}

func (j *Job) collectOnce() {
	start := time.Now()

	mx, errs := j.module.Collect()
	for _, err := range errs {
		j.Warning(err)
	}

	if len(mx) == 0 {
		j.Debug("no metrics collected")
		return
	}

	if err := j.out.WriteBatch(j.Name, mx); err != nil {
		j.Errorf("writing metrics: %v", err)
		return
	}

	j.Debugf("collected %d metrics (%d errors) in %s", len(mx), len(errs), time.Since(start))
}
