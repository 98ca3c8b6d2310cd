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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/unikorn-cloud/users-conformance/pkg/fake"
)

const shutdownTimeout = 10 * time.Second

func newLogger(development bool) (logr.Logger, error) {
	var (
		zapLogger *zap.Logger
		err       error
	)

	if development {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}

	if err != nil {
		return logr.Discard(), err
	}

	return zapr.NewLogger(zapLogger), nil
}

func run(ctx context.Context, logger logr.Logger, listen string, options *fake.Options) error {
	server, err := fake.New(fake.WithOptions(options), fake.WithLogger(logger.WithName("fake")))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              listen,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		errs <- httpServer.ListenAndServe()
	}()

	logger.Info("serving users API", "listen", listen, "prefix", options.Prefix, "authentication", options.AuthToken != "")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func main() {
	var (
		options     fake.Options
		listen      string
		development bool
	)

	options.AddFlags(pflag.CommandLine)

	pflag.StringVar(&listen, "listen", ":8080", "Address to listen on")
	pflag.BoolVar(&development, "development", false, "Human readable debug logging")

	pflag.Parse()

	logger, err := newLogger(development)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger.WithName("init").Info("service starting", "application", "users-fake-server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, listen, &options); err != nil {
		logger.Error(err, "server failed")
		stop()
		os.Exit(1)
	}
}
