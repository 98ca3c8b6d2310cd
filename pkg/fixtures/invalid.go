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

package fixtures

import (
	"strings"

	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

// Values the provider is expected to reject.
const (
	InvalidEmail   = "no-at-symbol.com"
	InvalidGender  = openapi.Gender("unknown")
	InvalidStatus  = openapi.Status("unknown-status")
	WhitespaceName = "    "
)

// RepeatName returns a name of exactly n characters.
func RepeatName(n int) string {
	return strings.Repeat("A", n)
}

// InvalidUser returns a user where every field fails validation.
func InvalidUser() openapi.UserCreate {
	return openapi.UserCreate{
		Name:   "",
		Email:  "invalid-email",
		Gender: openapi.Gender("invalid"),
		Status: openapi.Status("invalid"),
	}
}
