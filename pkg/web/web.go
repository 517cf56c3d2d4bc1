// SPDX-License-Identifier: GPL-3.0-or-later

// Package web contains HTTP request and client configuration helpers
// shared by modules that talk to HTTP endpoints.
package web

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTP is a combined HTTP client and request configuration,
// intended to be inlined into a module Config.
type HTTP struct {
	Request `yaml:",inline"`
	Client  `yaml:",inline"`
}

// Request is the configuration of an HTTP request.
type Request struct {
	URL      string            `yaml:"url"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	Headers  map[string]string `yaml:"headers"`
}

// Client is the configuration of an HTTP client.
type Client struct {
	Timeout           Duration `yaml:"timeout"`
	NotFollowRedirect bool     `yaml:"not_follow_redirects"`
	TLSSkipVerify     bool     `yaml:"tls_skip_verify"`
}

// NewHTTPRequest creates a new *http.Request from the request configuration.
func NewHTTPRequest(cfg Request) (*http.Request, error) {
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid url '%s': %v", cfg.URL, err)
	}

	req, err := http.NewRequest(http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, err
	}

	if cfg.Username != "" || cfg.Password != "" {
		req.SetBasicAuth(cfg.Username, cfg.Password)
	}
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// NewHTTPClient creates a new *http.Client from the client configuration.
func NewHTTPClient(cfg Client) (*http.Client, error) {
	timeout := cfg.Timeout.Duration
	if timeout == 0 {
		timeout = time.Second
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.TLSSkipVerify},
		},
	}

	if cfg.NotFollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return client, nil
}
