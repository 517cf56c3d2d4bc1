// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/netdata/jmx.d.plugin/pkg/jmxbean"
	"github.com/netdata/jmx.d.plugin/pkg/web"
)

type (
	// jmxClient takes a bean snapshot: for every requested object name
	// pattern it returns the matching beans with the requested attribute
	// values, or a per-pattern error.
	jmxClient interface {
		QueryBeans(queries map[string][]string) ([]beanResult, error)
		Close()
	}

	// beanResult is one discovered bean, or one failed query.
	// Exactly one of Reading and Err is set.
	beanResult struct {
		Pattern string
		Reading *beanReading
		Err     error
	}

	beanReading struct {
		Name       string
		Attributes []beanAttribute
	}

	beanAttribute struct {
		Name  string
		Value any
	}
)

type (
	jolokiaRequest struct {
		Type      string   `json:"type"`
		MBean     string   `json:"mbean"`
		Attribute []string `json:"attribute,omitempty"`
	}

	jolokiaResponse struct {
		Request jolokiaRequest  `json:"request"`
		Value   json.RawMessage `json:"value"`
		Status  int             `json:"status"`
		Error   string          `json:"error,omitempty"`
	}
)

func newJolokiaClient(httpClient *http.Client, request web.Request) *jolokiaClient {
	return &jolokiaClient{httpClient: httpClient, request: request}
}

// jolokiaClient reads MBean attributes through the Jolokia REST protocol,
// batching all patterns of a snapshot into a single POST.
type jolokiaClient struct {
	httpClient *http.Client
	request    web.Request
}

func (c *jolokiaClient) QueryBeans(queries map[string][]string) ([]beanResult, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	patterns := make([]string, 0, len(queries))
	for pattern := range queries {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	requests := make([]jolokiaRequest, 0, len(patterns))
	for _, pattern := range patterns {
		requests = append(requests, jolokiaRequest{Type: "read", MBean: pattern, Attribute: queries[pattern]})
	}

	responses, err := c.doBatch(requests)
	if err != nil {
		return nil, err
	}

	var results []beanResult
	for i, resp := range responses {
		pattern := requests[i].MBean

		if resp.Status != http.StatusOK {
			results = append(results, beanResult{
				Pattern: pattern,
				Err:     fmt.Errorf("jolokia status %d: %s", resp.Status, resp.Error),
			})
			continue
		}

		readings, err := decodeReadValue(pattern, resp.Value)
		if err != nil {
			results = append(results, beanResult{Pattern: pattern, Err: err})
			continue
		}
		for _, r := range readings {
			r := r
			results = append(results, beanResult{Pattern: pattern, Reading: &r})
		}
	}

	return results, nil
}

func (c *jolokiaClient) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *jolokiaClient) doBatch(requests []jolokiaRequest) ([]jolokiaResponse, error) {
	body, err := json.Marshal(requests)
	if err != nil {
		return nil, err
	}

	req, err := web.NewHTTPRequest(c.request)
	if err != nil {
		return nil, err
	}
	req.Method = http.MethodPost
	req.Header.Set("Content-Type", "application/json")
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("'%s' returned HTTP status %d", c.request.URL, resp.StatusCode)
	}

	var responses []jolokiaResponse
	if err := json.NewDecoder(resp.Body).Decode(&responses); err != nil {
		return nil, fmt.Errorf("decoding response from '%s': %v", c.request.URL, err)
	}
	if len(responses) != len(requests) {
		return nil, fmt.Errorf("'%s' returned %d responses for %d requests", c.request.URL, len(responses), len(requests))
	}

	return responses, nil
}

// decodeReadValue unpacks the value of a Jolokia read response. A pattern
// read returns a map of concrete object name to attribute map, an exact
// read returns the attribute map directly.
func decodeReadValue(pattern string, raw json.RawMessage) ([]beanReading, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value map[string]any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("unexpected read value for '%s': %v", pattern, err)
	}

	name, err := jmxbean.Parse(pattern)
	if err != nil {
		return nil, err
	}

	if !name.IsPattern() {
		return []beanReading{{Name: pattern, Attributes: toAttributes(value)}}, nil
	}

	beans := make([]string, 0, len(value))
	for bean := range value {
		beans = append(beans, bean)
	}
	sort.Strings(beans)

	var readings []beanReading
	for _, bean := range beans {
		attrs, ok := value[bean].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected attribute map for bean '%s'", bean)
		}
		readings = append(readings, beanReading{Name: bean, Attributes: toAttributes(attrs)})
	}

	return readings, nil
}

func toAttributes(m map[string]any) []beanAttribute {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]beanAttribute, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, beanAttribute{Name: name, Value: m[name]})
	}
	return attrs
}
