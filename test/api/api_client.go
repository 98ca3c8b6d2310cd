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

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/users-conformance/pkg/client"
	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

// APIClient is the users client as used by the suites.  Every response is
// checked against the embedded OpenAPI document when contract validation is
// enabled, a violation is returned as an error alongside the response.
type APIClient struct {
	*client.Client

	validator *openapi.ResponseValidator
}

// Ensure the interface is implemented.
var _ client.Interface = &APIClient{}

func NewAPIClientWithConfig(config *TestConfig) (*APIClient, error) {
	logger := ginkgo.GinkgoLogr.WithName("users-client")

	c, err := client.New(config.BaseURL,
		client.WithAuthToken(config.AuthToken),
		client.WithTimeout(config.RequestTimeout),
		client.WithLogger(logger),
		client.WithRequestLogging(config.LogRequests || config.DebugLogging),
		client.WithResponseLogging(config.LogResponses || config.DebugLogging),
	)
	if err != nil {
		return nil, err
	}

	apiClient := &APIClient{
		Client: c,
	}

	if config.ValidateContract {
		base, err := url.Parse(config.BaseURL)
		if err != nil {
			return nil, err
		}

		validator, err := openapi.NewResponseValidator(base.Path)
		if err != nil {
			return nil, err
		}

		apiClient.validator = validator
	}

	return apiClient, nil
}

// checkContract validates a successful exchange against the API contract.
func (c *APIClient) checkContract(ctx context.Context, resp *client.Response, err error) (*client.Response, error) {
	if err != nil || c.validator == nil {
		return resp, err
	}

	if err := c.validator.ValidateResponse(ctx, resp.Request, resp.StatusCode, resp.Header, resp.Body); err != nil {
		ginkgo.GinkgoWriter.Printf("[%s %s] CONTRACT VIOLATION status=%d body=%s traceID=%s error=%v\n", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, resp.String(), resp.TraceID, err)

		return resp, fmt.Errorf("response violates contract (trace ID: %s): %w", resp.TraceID, err)
	}

	return resp, nil
}

func (c *APIClient) ListUsers(ctx context.Context, params *client.ListUsersParams) (*client.Response, error) {
	resp, err := c.Client.ListUsers(ctx, params)

	return c.checkContract(ctx, resp, err)
}

func (c *APIClient) GetUser(ctx context.Context, userID int64) (*client.Response, error) {
	resp, err := c.Client.GetUser(ctx, userID)

	return c.checkContract(ctx, resp, err)
}

func (c *APIClient) CreateUser(ctx context.Context, user openapi.UserCreate) (*client.Response, error) {
	resp, err := c.Client.CreateUser(ctx, user)

	return c.checkContract(ctx, resp, err)
}

func (c *APIClient) ReplaceUser(ctx context.Context, userID int64, user openapi.UserCreate) (*client.Response, error) {
	resp, err := c.Client.ReplaceUser(ctx, userID, user)

	return c.checkContract(ctx, resp, err)
}

func (c *APIClient) UpdateUser(ctx context.Context, userID int64, patch openapi.UserPatch) (*client.Response, error) {
	resp, err := c.Client.UpdateUser(ctx, userID, patch)

	return c.checkContract(ctx, resp, err)
}

func (c *APIClient) DeleteUser(ctx context.Context, userID int64) (*client.Response, error) {
	resp, err := c.Client.DeleteUser(ctx, userID)

	return c.checkContract(ctx, resp, err)
}
