// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/netdata/jmx.d.plugin/agent/module"
	"github.com/netdata/jmx.d.plugin/logger"
	"github.com/netdata/jmx.d.plugin/pkg/multipath"
	"github.com/netdata/jmx.d.plugin/pkg/openmetrics"

	"github.com/ilyam8/hashstructure"
	"gopkg.in/yaml.v2"
)

type moduleConfig struct {
	UpdateEvery        int              `yaml:"update_every"`
	AutoDetectionRetry int              `yaml:"autodetection_retry"`
	Jobs               []map[string]any `yaml:"jobs"`
}

func (a *Agent) createJobs(out *openmetrics.Writer) []*Job {
	var jobs []*Job
	seen := make(map[uint64]bool)

	for name, creator := range a.ModuleRegistry {
		if a.RunModule != "all" && a.RunModule != name {
			continue
		}

		cfg, err := a.loadModuleConfig(name)
		if err != nil {
			if multipath.IsNotFound(err) && creator.Disabled {
				a.Debugf("module '%s' has no config and is disabled by default, skipping", name)
				continue
			}
			a.Warningf("skipping module '%s': %v", name, err)
			continue
		}

		for _, jobCfg := range cfg.Jobs {
			hash, err := hashstructure.Hash(jobCfg, nil)
			if err != nil {
				a.Warningf("module '%s': failed to hash job config: %v", name, err)
				continue
			}
			if seen[hash] {
				a.Infof("module '%s': duplicate job config, skipping", name)
				continue
			}
			seen[hash] = true

			job, err := a.createJob(name, creator, cfg, jobCfg, out)
			if err != nil {
				a.Warningf("module '%s': %v", name, err)
				continue
			}
			jobs = append(jobs, job)
		}
	}

	return jobs
}

func (a *Agent) loadModuleConfig(name string) (*moduleConfig, error) {
	path, err := a.ModulesConfDir.Find(name + ".conf")
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %v", path, err)
	}

	var cfg moduleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing '%s': %v", path, err)
	}
	if len(cfg.Jobs) == 0 {
		return nil, fmt.Errorf("'%s' has no jobs", path)
	}

	return &cfg, nil
}

func (a *Agent) createJob(moduleName string, creator module.Creator, cfg *moduleConfig, jobCfg map[string]any, out *openmetrics.Writer) (*Job, error) {
	raw, err := yaml.Marshal(jobCfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling job config: %v", err)
	}

	mod := creator.Create()
	if err := yaml.Unmarshal(raw, mod); err != nil {
		return nil, fmt.Errorf("applying job config: %v", err)
	}

	jobName, _ := jobCfg["name"].(string)
	if jobName == "" {
		jobName = moduleName
	}

	updateEvery := firstPositive(
		intValue(jobCfg["update_every"]),
		cfg.UpdateEvery,
		creator.UpdateEvery,
		module.UpdateEvery,
	)
	if updateEvery < a.MinUpdateEvery {
		updateEvery = a.MinUpdateEvery
	}

	autoDetectionRetry := firstPositive(
		intValue(jobCfg["autodetection_retry"]),
		cfg.AutoDetectionRetry,
		creator.AutoDetectionRetry,
	)

	mod.GetBase().Logger = logger.New().With(
		slog.String("collector", moduleName),
		slog.String("job", jobName),
	)

	return &Job{
		Logger: logger.New().With(
			slog.String("collector", moduleName),
			slog.String("job", jobName),
		),
		Name:               jobName,
		ModuleName:         moduleName,
		UpdateEvery:        updateEvery,
		AutoDetectionRetry: autoDetectionRetry,
		module:             mod,
		out:                out,
	}, nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func intValue(v any) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
