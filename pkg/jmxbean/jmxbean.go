// SPDX-License-Identifier: GPL-3.0-or-later

package jmxbean

import (
	"fmt"
	"strings"
)

// Wildcard is the property value that matches any concrete value in its position.
const Wildcard = "*"

const typeKey = "type"

// Property is a single key property of an identifier.
type Property struct {
	Key   string
	Value string
}

// Name is a structured bean identifier: a domain plus an ordered list of
// key properties.
type Name struct {
	Domain     string
	Properties []Property
}

// Parse parses "domain:key1=value1,key2=value2" into a Name,
// preserving property order.
func Parse(s string) (Name, error) {
	domain, list, ok := strings.Cut(s, ":")
	if !ok {
		return Name{}, fmt.Errorf("invalid object name '%s': missing ':' separator", s)
	}
	if domain == "" {
		return Name{}, fmt.Errorf("invalid object name '%s': empty domain", s)
	}
	if list == "" {
		return Name{}, fmt.Errorf("invalid object name '%s': empty property list", s)
	}

	var props []Property
	for _, part := range strings.Split(list, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok || key == "" {
			return Name{}, fmt.Errorf("invalid object name '%s': malformed property '%s'", s, part)
		}
		props = append(props, Property{Key: key, Value: value})
	}

	return Name{Domain: domain, Properties: props}, nil
}

// String returns the canonical form of the name: the domain and the
// properties in their original order.
func (n Name) String() string {
	var sb strings.Builder
	sb.WriteString(n.Domain)
	sb.WriteByte(':')
	for i, p := range n.Properties {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// IsPattern reports whether any property value is the wildcard token.
func (n Name) IsPattern() bool {
	for _, p := range n.Properties {
		if p.Value == Wildcard {
			return true
		}
	}
	return false
}

// Type returns the value of the 'type' property if present.
func (n Name) Type() (string, bool) {
	for _, p := range n.Properties {
		if p.Key == typeKey {
			return p.Value, true
		}
	}
	return "", false
}
