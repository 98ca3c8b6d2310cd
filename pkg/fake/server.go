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

// Package fake is an in-memory users service that behaves like the public
// GoRest API closely enough to run the conformance suites hermetically.
package fake

import (
	"crypto/subtle"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
)

// Server serves the users API.
type Server struct {
	options *Options
	logger  logr.Logger
	router  chi.Router
}

// Ensure the interface is implemented.
var _ http.Handler = &Server{}

// New returns a server with an empty user collection.
func New(opts ...Option) (*Server, error) {
	c := &config{
		options: defaultOptions(),
		logger:  logr.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	validator, err := newUserValidator(c.options.MaxNameLength)
	if err != nil {
		return nil, err
	}

	h := &handler{
		store:     newStore(c.options.FirstID),
		validator: validator,
	}

	s := &Server{
		options: c.options,
		logger:  c.logger,
	}

	router := chi.NewRouter()
	router.Use(s.logRequests)
	router.Use(middleware.Recoverer)
	router.Use(s.authenticate)
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	router.Route(strings.TrimSuffix(c.options.Prefix, "/")+"/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.replaceUser)
		r.Patch("/{id}", h.updateUser)
		r.Delete("/{id}", h.deleteUser)
	})

	s.router = router

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Prefix is the path the API is served under.
func (s *Server) Prefix() string {
	return s.options.Prefix
}

// logRequests logs every request along with its trace context and makes
// the logger available to handlers.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(logr.NewContext(r.Context(), s.logger)))

		s.logger.V(1).Info("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"traceparent", r.Header.Get("Traceparent"),
		)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.options.AuthToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.options.AuthToken)) != 1 {
			writeMessage(w, r, http.StatusUnauthorized, messageAuthFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// TestServer runs a Server on a loopback listener.
type TestServer struct {
	*Server

	server *httptest.Server
}

// NewTestServer starts a server, call Close when done.
func NewTestServer(opts ...Option) (*TestServer, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return &TestServer{
		Server: s,
		server: httptest.NewServer(s),
	}, nil
}

// URL is the base URL of the users API, including the prefix.
func (s *TestServer) URL() string {
	return s.server.URL + strings.TrimSuffix(s.options.Prefix, "/")
}

func (s *TestServer) Close() {
	s.server.Close()
}
