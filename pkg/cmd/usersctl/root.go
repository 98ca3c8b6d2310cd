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

// Package usersctl implements a command line client for the users API, for
// poking a provider by hand when a conformance run fails.
package usersctl

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unikorn-cloud/users-conformance/pkg/client"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// Options are the global flags.
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Output  string
	Verbose bool
}

func (o *Options) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&o.BaseURL, "base-url", "https://gorest.co.in/public/v2", "Users API base URL")
	flags.StringVar(&o.Token, "token", "", "Bearer token, defaults to $API_AUTH_TOKEN")
	flags.DurationVar(&o.Timeout, "timeout", client.DefaultTimeout, "Per request timeout")
	flags.StringVarP(&o.Output, "output", "o", outputTable, "Output format, one of table, json or yaml")
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "Log every request and response")
}

// ClientFactory creates the client used by commands.
type ClientFactory func(options *Options, logger logr.Logger) (client.Interface, error)

// NewClient creates a client talking to a real provider.
func NewClient(options *Options, logger logr.Logger) (client.Interface, error) {
	return client.New(options.BaseURL,
		client.WithAuthToken(options.Token),
		client.WithTimeout(options.Timeout),
		client.WithLogger(logger),
		client.WithRequestLogging(options.Verbose),
		client.WithResponseLogging(options.Verbose),
	)
}

func newLogger(verbose bool) (logr.Logger, error) {
	var (
		zapLogger *zap.Logger
		err       error
	)

	if verbose {
		zapLogger, err = zap.NewDevelopment()
	} else {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

		zapLogger, err = config.Build()
	}

	if err != nil {
		return logr.Discard(), err
	}

	return zapr.NewLogger(zapLogger), nil
}

// command carries shared state to every subcommand.
type command struct {
	options *Options
	factory ClientFactory
	client  client.Interface
}

// NewRootCommand returns the usersctl command tree.
func NewRootCommand(factory ClientFactory) *cobra.Command {
	c := &command{
		options: &Options{},
		factory: factory,
	}

	root := &cobra.Command{
		Use:           "usersctl",
		Short:         "usersctl is a CLI for the users API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	c.options.AddFlags(root)

	root.AddCommand(
		c.pingCommand(),
		c.listCommand(),
		c.getCommand(),
		c.createCommand(),
		c.replaceCommand(),
		c.patchCommand(),
		c.deleteCommand(),
	)

	return root
}

func (c *command) setup(cmd *cobra.Command) error {
	switch c.options.Output {
	case outputTable, outputJSON, outputYAML:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidArgument, c.options.Output)
	}

	if c.options.Token == "" {
		c.options.Token = os.Getenv("API_AUTH_TOKEN")
	}

	logger, err := newLogger(c.options.Verbose)
	if err != nil {
		return err
	}

	cli, err := c.factory(c.options, logger.WithName(cmd.Name()))
	if err != nil {
		return err
	}

	c.client = cli

	return nil
}
