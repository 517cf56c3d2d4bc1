// SPDX-License-Identifier: GPL-3.0-or-later

package jmxbean

import "sort"

// Meta is the result of resolving a concrete name against a template:
// the logical metric name the template was declared with, and the tags
// derived from the match.
type Meta struct {
	MetricName string
	Tags       map[string]string
}

type template struct {
	name       Name
	canonical  string
	metricName string
}

// Templates is a registry of query templates, each bound to a logical
// metric name.
type Templates struct {
	byCanonical map[string]string
	ordered     []template
}

func NewTemplates() *Templates {
	return &Templates{byCanonical: make(map[string]string)}
}

// Add registers a template. Registering the same canonical template twice
// overwrites the bound metric name.
func (t *Templates) Add(name Name, metricName string) {
	canonical := name.String()

	if _, ok := t.byCanonical[canonical]; ok {
		t.byCanonical[canonical] = metricName
		for i := range t.ordered {
			if t.ordered[i].canonical == canonical {
				t.ordered[i].metricName = metricName
			}
		}
		return
	}

	t.byCanonical[canonical] = metricName
	t.ordered = append(t.ordered, template{name: name, canonical: canonical, metricName: metricName})
	// keep the scan order fixed so that overlapping templates resolve reproducibly
	sort.Slice(t.ordered, func(i, j int) bool { return t.ordered[i].canonical < t.ordered[j].canonical })
}

func (t *Templates) Len() int { return len(t.ordered) }

// Resolve matches a concrete name against the registered templates and
// returns the metadata of the first match. Templates are scanned in
// lexicographic order of their canonical form, first match wins.
// A concrete name that equals a template verbatim resolves immediately
// with no tags.
func (t *Templates) Resolve(concrete Name) (Meta, bool) {
	if metricName, ok := t.byCanonical[concrete.String()]; ok {
		return Meta{MetricName: metricName, Tags: map[string]string{}}, true
	}

	for _, tpl := range t.ordered {
		if tags, ok := match(tpl.name, concrete); ok {
			return Meta{MetricName: tpl.metricName, Tags: tags}, true
		}
	}

	return Meta{}, false
}

func match(tpl, concrete Name) (map[string]string, bool) {
	if tpl.Domain != concrete.Domain {
		return nil, false
	}

	tv, tok := tpl.Type()
	cv, cok := concrete.Type()
	if tok != cok {
		return nil, false
	}
	if tok && tv != Wildcard && tv != cv {
		return nil, false
	}

	if len(tpl.Properties) != len(concrete.Properties) {
		return nil, false
	}

	// properties are paired positionally, not by key lookup
	tags := make(map[string]string)
	for i, p := range tpl.Properties {
		c := concrete.Properties[i]
		if p.Key != c.Key {
			return nil, false
		}
		if p.Value != Wildcard && p.Value != c.Value {
			return nil, false
		}
		if p.Key == typeKey || p.Value == Wildcard {
			tags[p.Key] = c.Value
		}
	}

	return tags, true
}
