// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/netdata/jmx.d.plugin/agent"
	"github.com/netdata/jmx.d.plugin/logger"
	"github.com/netdata/jmx.d.plugin/pkg/buildinfo"
	"github.com/netdata/jmx.d.plugin/pkg/cli"

	_ "github.com/netdata/jmx.d.plugin/modules/jmx"
)

const name = "jmx.d"

func confDir(opts *cli.Option) []string {
	if len(opts.ConfDir) > 0 {
		return opts.ConfDir
	}
	if dir := os.Getenv("NETDATA_USER_CONFIG_DIR"); dir != "" {
		return []string{dir, os.Getenv("NETDATA_STOCK_CONFIG_DIR")}
	}
	return []string{
		"/etc/netdata/jmx.d",
		"/usr/lib/netdata/conf.d/jmx.d",
		"./config/jmx.d",
	}
}

func main() {
	opts := parseCLI()

	if opts.Version {
		fmt.Printf("%s.plugin, version: %s\n", name, buildinfo.Version)
		return
	}

	if lvl := os.Getenv("NETDATA_LOG_LEVEL"); lvl != "" {
		logger.Level.SetByName(lvl)
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	a := agent.New(agent.Config{
		Name:           name,
		ModulesConfDir: confDir(opts),
		RunModule:      opts.Module,
		MinUpdateEvery: opts.UpdateEvery,
	})

	a.Infof("plugin: name=%s, version=%s", a.Name, buildinfo.Version)
	a.Infof("directories → config: %s", a.ModulesConfDir)

	a.Run()
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args)
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		logger.Errorf("cannot parse command line options: %v", err)
		os.Exit(1)
	}

	return opt
}
