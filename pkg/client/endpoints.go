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
	"fmt"
	"strconv"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all users API endpoint patterns, relative to the
// provider's base URL.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

func (e *Endpoints) ListUsers() string {
	return "/users"
}

func (e *Endpoints) CreateUser() string {
	return "/users"
}

// User is shared by get, replace, patch and delete.
func (e *Endpoints) User(userID int64) (string, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, userID)
	if err != nil {
		return "", fmt.Errorf("styling user id parameter: %w", err)
	}

	return "/users/" + pathParam, nil
}

// ListUsersParams paginates a user listing, nil fields use provider defaults.
type ListUsersParams struct {
	Page    *int
	PerPage *int
}

func (p *ListUsersParams) query() map[string]string {
	query := map[string]string{}

	if p == nil {
		return query
	}

	if p.Page != nil {
		query["page"] = strconv.Itoa(*p.Page)
	}

	if p.PerPage != nil {
		query["per_page"] = strconv.Itoa(*p.PerPage)
	}

	return query
}
