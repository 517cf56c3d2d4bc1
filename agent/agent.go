// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/netdata/jmx.d.plugin/agent/module"
	"github.com/netdata/jmx.d.plugin/logger"
	"github.com/netdata/jmx.d.plugin/pkg/multipath"
	"github.com/netdata/jmx.d.plugin/pkg/openmetrics"
)

// Config is an Agent configuration.
type Config struct {
	Name           string
	ModulesConfDir []string
	RunModule      string
	MinUpdateEvery int
}

// Agent represents the plugin orchestrator: it builds jobs from the
// module configs and runs them until a stop or reload signal arrives.
type Agent struct {
	*logger.Logger

	Name           string
	ModulesConfDir multipath.MultiPath
	RunModule      string
	MinUpdateEvery int
	ModuleRegistry module.Registry
	Out            io.Writer
}

// New creates a new Agent.
func New(cfg Config) *Agent {
	return &Agent{
		Logger: logger.New().With(
			slog.String("component", "agent"),
		),
		Name:           cfg.Name,
		ModulesConfDir: multipath.New(cfg.ModulesConfDir...),
		RunModule:      cfg.RunModule,
		MinUpdateEvery: cfg.MinUpdateEvery,
		ModuleRegistry: module.DefaultRegistry,
		Out:            os.Stdout,
	}
}

// Run starts the Agent.
func (a *Agent) Run() {
	serve(a)
}

func serve(a *Agent) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	var wg sync.WaitGroup

	var exit bool

	for {
		ctx, cancel := context.WithCancel(context.Background())

		wg.Add(1)
		go func() { defer wg.Done(); a.run(ctx) }()

		switch sig := <-ch; sig {
		case syscall.SIGHUP:
			a.Infof("received %s signal (%d). Restarting running instance", sig, sig)
		default:
			a.Infof("received %s signal (%d). Terminating...", sig, sig)
			exit = true
		}

		cancel()

		func() {
			timeout := time.Second * 10
			t := time.NewTimer(timeout)
			defer t.Stop()
			done := make(chan struct{})

			go func() { wg.Wait(); close(done) }()

			select {
			case <-done:
			case <-t.C:
				a.Errorf("stopping all jobs took more than %s, exiting...", timeout)
				os.Exit(0)
			}
		}()

		if exit {
			os.Exit(0)
		}

		time.Sleep(time.Second)
	}
}

func (a *Agent) run(ctx context.Context) {
	a.Info("instance is started")
	defer a.Info("instance is stopped")

	jobs := a.createJobs(openmetrics.NewWriter(a.Out))
	if len(jobs) == 0 {
		a.Info("no jobs to run")
		return
	}

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(job *Job) { defer wg.Done(); job.Run(ctx) }(job)
	}
	wg.Wait()
}
