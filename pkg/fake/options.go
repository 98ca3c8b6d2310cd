/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
)

const (
	// DefaultPrefix matches the public GoRest API.
	DefaultPrefix = "/public/v2"

	// DefaultMaxNameLength is the longest name accepted.
	DefaultMaxNameLength = 200

	// DefaultFirstID is the first ID allocated.
	DefaultFirstID = 1000

	defaultPerPage = 10
	maxPerPage     = 100
)

// Options defines how the fake behaves.
type Options struct {
	// Prefix is prepended to every route.
	Prefix string

	// AuthToken, when set, must be presented as a bearer token.
	AuthToken string

	// MaxNameLength is the longest name in runes.
	MaxNameLength int

	// FirstID is the first ID allocated to a created user.
	FirstID int64
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Prefix, "prefix", DefaultPrefix, "Path prefix to serve the users API under")
	f.StringVar(&o.AuthToken, "token", "", "Bearer token to require, empty disables authentication")
	f.IntVar(&o.MaxNameLength, "max-name-length", DefaultMaxNameLength, "Longest user name accepted")
	f.Int64Var(&o.FirstID, "first-id", DefaultFirstID, "First user ID to allocate")
}

func defaultOptions() *Options {
	return &Options{
		Prefix:        DefaultPrefix,
		MaxNameLength: DefaultMaxNameLength,
		FirstID:       DefaultFirstID,
	}
}

type config struct {
	options *Options
	logger  logr.Logger
}

// Option configures a Server.
type Option func(*config)

// WithOptions replaces all options, typically from flags.
func WithOptions(options *Options) Option {
	return func(c *config) {
		o := *options
		c.options = &o
	}
}

func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.options.Prefix = prefix
	}
}

func WithAuthToken(token string) Option {
	return func(c *config) {
		c.options.AuthToken = token
	}
}

func WithMaxNameLength(length int) Option {
	return func(c *config) {
		c.options.MaxNameLength = length
	}
}

func WithFirstID(id int64) Option {
	return func(c *config) {
		c.options.FirstID = id
	}
}

// WithLogger logs every request.
func WithLogger(logger logr.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
