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

package openapi

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed users.spec.yaml
var spec []byte

var ErrRouteNotFound = errors.New("no operation matches request")

// Schema returns the parsed and validated users API document.
func Schema() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("loading users schema: %w", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validating users schema: %w", err)
	}

	return doc, nil
}

// ResponseValidator checks observed responses against the users API
// document.  Requests are matched by path only, basePath is the path
// component of the provider's base URL e.g. "/public/v2".
type ResponseValidator struct {
	router   routers.Router
	basePath string
}

func NewResponseValidator(basePath string) (*ResponseValidator, error) {
	doc, err := Schema()
	if err != nil {
		return nil, err
	}

	// Servers would pin the host, drop them and strip the base path instead.
	doc.Servers = nil

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating schema router: %w", err)
	}

	return &ResponseValidator{
		router:   router,
		basePath: strings.TrimSuffix(basePath, "/"),
	}, nil
}

// ValidateResponse validates a response to req.  Statuses the document does
// not list are accepted.
func (v *ResponseValidator) ValidateResponse(ctx context.Context, req *http.Request, status int, header http.Header, body []byte) error {
	routed := req.Clone(ctx)
	routed.URL.Path = strings.TrimPrefix(routed.URL.Path, v.basePath)
	routed.URL.RawPath = ""

	route, pathParams, err := v.router.FindRoute(routed)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRouteNotFound, req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    routed,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			MultiError: true,
		},
	}

	input.SetBodyBytes(bytes.Clone(body))

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%s %s returned %d: %w", req.Method, req.URL.Path, status, err)
	}

	return nil
}
