// SPDX-License-Identifier: GPL-3.0-or-later

// Package openmetrics serializes collected metrics into an
// openmetrics-flavoured text exposition format.
package openmetrics

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/netdata/jmx.d.plugin/agent/module"
)

// Writer writes metric batches to the underlying writer.
// It is safe for concurrent use by multiple jobs.
type Writer struct {
	mux sync.Mutex
	buf *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(w)}
}

// WriteBatch writes one collection batch. Every metric line carries the
// producing job name as a label alongside the metric's own tags.
// A type hint line is written once per metric name per batch.
func (w *Writer) WriteBatch(job string, mx []module.Metric) error {
	if len(mx) == 0 {
		return nil
	}

	w.mux.Lock()
	defer w.mux.Unlock()

	typed := make(map[string]bool)
	for _, m := range mx {
		if m.Type != "" && !typed[m.Name] {
			typed[m.Name] = true
			if _, err := fmt.Fprintf(w.buf, "# TYPE %s %s\n", m.Name, m.Type); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w.buf, "%s{%s} %d\n", m.Name, formatLabels(job, m.Tags), m.Value); err != nil {
			return err
		}
	}

	return w.buf.Flush()
}

func formatLabels(job string, tags map[string]string) string {
	var sb strings.Builder
	sb.WriteString(`job="`)
	sb.WriteString(escapeLabelValue(job))
	sb.WriteByte('"')

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		sb.WriteByte(',')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(escapeLabelValue(tags[k]))
		sb.WriteByte('"')
	}

	return sb.String()
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabelValue(s string) string { return labelEscaper.Replace(s) }
