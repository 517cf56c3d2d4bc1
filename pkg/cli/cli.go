// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"errors"

	"github.com/jessevdk/go-flags"
)

// Option defines command line options.
type Option struct {
	UpdateEvery int      `short:"u" long:"update-every" description:"data collection frequency in seconds" default:"1"`
	Module      string   `short:"m" long:"module" description:"run only the specified module" default:"all"`
	ConfDir     []string `short:"c" long:"config-dir" description:"config dir to read"`
	Debug       bool     `short:"d" long:"debug" description:"debug mode"`
	Version     bool     `short:"v" long:"version" description:"display the version and exit"`
}

// Parse returns parsed command-line flags in Option struct
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "jmx.d.plugin"
	parser.Usage = "[OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	return opt, nil
}

// IsHelp returns true if the error is a flags.ErrHelp.
func IsHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}
