// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package enginerpc

import (
	"net/http"
	"net/url"
)

// Options holds per-request settings for JSON-RPC requests.
type Options struct {
	headers     http.Header
	queryParams url.Values
}

// Option configures a JSON-RPC request.
type Option func(*Options)

// NewOptions applies ops to an empty Options.
func NewOptions(ops []Option) *Options {
	o := &Options{
		headers:     http.Header{},
		queryParams: url.Values{},
	}
	for _, op := range ops {
		op(o)
	}
	return o
}

// Headers returns the request headers.
func (o *Options) Headers() http.Header {
	return o.headers
}

// QueryParams returns the request query parameters.
func (o *Options) QueryParams() url.Values {
	return o.queryParams
}

// WithHeader adds a request header.
func WithHeader(key, value string) Option {
	return func(o *Options) {
		o.headers.Add(key, value)
	}
}

// WithQueryParam adds a query parameter to the request URL.
func WithQueryParam(key, value string) Option {
	return func(o *Options) {
		o.queryParams.Add(key, value)
	}
}
