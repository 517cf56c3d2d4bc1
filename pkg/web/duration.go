// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"fmt"
	"time"
)

// Duration is a time.Duration wrapper that understands both duration
// strings ("5s") and plain numbers of seconds in YAML.
type Duration struct {
	Duration time.Duration
}

func (d Duration) String() string { return d.Duration.String() }

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}

	switch v := v.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("unparsable duration format '%s'", v)
		}
		d.Duration = parsed
	case int:
		d.Duration = time.Duration(v) * time.Second
	case float64:
		d.Duration = time.Duration(v * float64(time.Second))
	default:
		return fmt.Errorf("unparsable duration format '%v'", v)
	}

	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}
