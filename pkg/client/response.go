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

package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

// Response is the raw result of a single request.  The client never
// interprets it, the decoding helpers are for callers.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration

	// TraceID identifies the request in provider logs.
	TraceID string

	// Request is the request as sent on the wire.
	Request *http.Request
}

func (r *Response) String() string {
	return string(r.Body)
}

func decode[T any](r *Response) (T, error) {
	var out T

	if err := json.Unmarshal(r.Body, &out); err != nil {
		return out, fmt.Errorf("unmarshaling %d response (trace ID: %s): %w", r.StatusCode, r.TraceID, err)
	}

	return out, nil
}

// User decodes a single user.
func (r *Response) User() (*openapi.User, error) {
	user, err := decode[openapi.User](r)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Users decodes a user list.
func (r *Response) Users() (openapi.Users, error) {
	return decode[openapi.Users](r)
}

// Errors decodes a validation failure.
func (r *Response) Errors() (openapi.ErrorEntries, error) {
	return decode[openapi.ErrorEntries](r)
}

// Message decodes a 401 or 404 body.
func (r *Response) Message() (*openapi.Message, error) {
	message, err := decode[openapi.Message](r)
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// NotFound is true for a 404 whose body says so.
func (r *Response) NotFound() bool {
	return r.StatusCode == http.StatusNotFound && strings.Contains(strings.ToLower(string(r.Body)), "not found")
}

// HasError returns true if any entry matches the field and, if not empty,
// contains the message text.
func HasError(entries openapi.ErrorEntries, field, message string) bool {
	for _, entry := range entries {
		if entry.Field == field && strings.Contains(entry.Message, message) {
			return true
		}
	}

	return false
}
